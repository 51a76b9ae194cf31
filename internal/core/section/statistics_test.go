package section

import (
	"errors"
	"testing"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

const statisticsFixture = `Night Audit Report
Room Statistics
Date 1 2 3 4 5
Total Occupied 85 2,550 2,400 30,000 29,000
Comp Rooms 2 60 55 700 650
Performance Statistics
Occupancy 85.0% 82.0% 80.0% 81.0% 79.0%
ADR 120.50 118.00 115.25 117.80 114.90
Revenue
Guest Statistics
In House Guests 140 4,100 3,900 48,000 46,500
Today's Activity`

func TestStatisticsSections(t *testing.T) {
	doc := pageDoc(statisticsFixture)

	rooms := mustExtract(t, roomStatisticsSection(), doc, domain.Metadata{})
	if rooms.Len() != 2 {
		t.Fatalf("room statistics: got %d rows, want header artifact dropped", rooms.Len())
	}
	if got := cell(t, rooms, 0, "metric"); got != "Total Occupied" {
		t.Fatalf("metric %v", got)
	}
	if got := cell(t, rooms, 0, "current_ptd"); got != "2,550" {
		t.Fatalf("ptd %v", got)
	}

	perf := mustExtract(t, performanceStatisticsSection(), doc, domain.Metadata{})
	if perf.Len() != 1 {
		t.Fatalf("performance statistics: got %d rows", perf.Len())
	}
	if got := cell(t, perf, 0, "metric"); got != "ADR" {
		t.Fatalf("metric %v", got)
	}

	guest := mustExtract(t, guestStatisticsSection(), doc, domain.Metadata{})
	if guest.Len() != 1 {
		t.Fatalf("guest statistics: got %d rows, want the single row kept", guest.Len())
	}
	if got := cell(t, guest, 0, "today"); got != "140" {
		t.Fatalf("today %v", got)
	}
}

func TestStatisticsSectionAbsent(t *testing.T) {
	_, err := roomStatisticsSection().Extract(pageDoc("nothing relevant"), domain.Metadata{})
	if !errors.Is(err, domain.ErrSectionNotFound) {
		t.Fatalf("err = %v, want ErrSectionNotFound", err)
	}
}
