package availability

import (
	"io"
	"log"
	"testing"
	"time"
	"visit-planner-service/internal/domain"
)

func quietNormalizer() *Normalizer {
	return NewNormalizer(log.New(io.Discard, "", 0))
}

func TestSlotEncoding(t *testing.T) {
	day := time.Date(2019, 5, 13, 0, 0, 0, 0, time.UTC)

	if got := Slot(day, domain.PeriodMorning); got != 20195130 {
		t.Fatalf("morning slot = %d, want 20195130", got)
	}
	if got := Slot(day, domain.PeriodAfternoon); got != 20195131 {
		t.Fatalf("afternoon slot = %d, want 20195131", got)
	}
}

func TestNormalizeMergesByFullName(t *testing.T) {
	records := []domain.ShiftRecord{
		{FirstName: " Ana ", LastName: "Martin", Date: "13/05/2019", TimeOfDay: "jour", Area1: true},
		{FirstName: "Ana", LastName: " Martin", Date: "14/05/2019", TimeOfDay: "matin", Area2: true},
		{FirstName: "Zoe", LastName: "Durand", Date: "13/05/2019", TimeOfDay: "matin", Area2: true},
	}

	persons, err := quietNormalizer().Normalize(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(persons) != 2 {
		t.Fatalf("expected 2 persons, got %d", len(persons))
	}

	ana := persons[0]
	if ana.Name != "Ana Martin" {
		t.Fatalf("first person = %q, want %q", ana.Name, "Ana Martin")
	}
	// jour -> two slots, then matin -> one more.
	want := []int{20195130, 20195131, 20195140}
	if len(ana.Slots) != len(want) {
		t.Fatalf("slots = %v, want %v", ana.Slots, want)
	}
	for i, s := range want {
		if ana.Slots[i] != s {
			t.Fatalf("slots = %v, want %v", ana.Slots, want)
		}
	}

	// The first record fixes the sector mask.
	if ana.Sector != 0b0001 {
		t.Fatalf("sector = %b, want 1", ana.Sector)
	}
}

func TestNormalizeUnrecognizedLabelDefaultsToMorning(t *testing.T) {
	records := []domain.ShiftRecord{
		{FirstName: "Luc", LastName: "Petit", Date: "01/06/2019", TimeOfDay: "soir"},
	}

	persons, err := quietNormalizer().Normalize(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(persons) != 1 || len(persons[0].Slots) != 1 {
		t.Fatalf("unexpected output: %+v", persons)
	}
	if persons[0].Slots[0] != 2019610 {
		t.Fatalf("slot = %d, want 2019610 (morning)", persons[0].Slots[0])
	}
}

func TestNormalizeRejectsBadDate(t *testing.T) {
	records := []domain.ShiftRecord{
		{FirstName: "Luc", LastName: "Petit", Date: "2019-06-01", TimeOfDay: "matin"},
	}
	if _, err := quietNormalizer().Normalize(records); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestNormalizeRejectsEmptyName(t *testing.T) {
	records := []domain.ShiftRecord{
		{FirstName: "  ", LastName: "", Date: "01/06/2019", TimeOfDay: "matin"},
	}
	if _, err := quietNormalizer().Normalize(records); err == nil {
		t.Fatal("expected error for empty name")
	}
}
