package availability

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
	"visit-planner-service/internal/domain"
)

// DateLayout is the day/month/year format used by upstream shift exports.
const DateLayout = "02/01/2006"

// Normalizer converts raw per-shift records into one Person per distinct
// volunteer, with all availability slots merged under the canonical
// "first last" name.
type Normalizer struct {
	logger *log.Logger
}

func NewNormalizer(logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize groups shift records by person and accumulates slot integers.
//
// The first record seen for a person fixes the sector mask; later records
// for the same name only contribute availability. Slots are accumulated as
// given: duplicates across records are preserved, order is irrelevant.
// Output keeps first-appearance order so repeated runs are deterministic.
func (n *Normalizer) Normalize(records []domain.ShiftRecord) ([]domain.Person, error) {
	byName := make(map[string]*domain.Person)
	order := make([]string, 0, len(records))

	for i, rec := range records {
		name := FullName(rec.FirstName, rec.LastName)
		if name == "" {
			return nil, fmt.Errorf("normalize shifts: record %d has no name", i)
		}

		slots, err := n.slotsFor(rec)
		if err != nil {
			return nil, fmt.Errorf("normalize shifts: record %d (%s): %w", i, name, err)
		}

		p, seen := byName[name]
		if !seen {
			byName[name] = &domain.Person{
				Name:   name,
				Slots:  slots,
				Sector: rec.SectorMask(),
			}
			order = append(order, name)
			continue
		}
		p.Slots = append(p.Slots, slots...)
	}

	persons := make([]domain.Person, 0, len(order))
	for _, name := range order {
		persons = append(persons, *byName[name])
	}
	return persons, nil
}

// slotsFor computes the slot integers for one shift record. "jour" covers
// both periods, "matin" the morning only. Any other label falls through to
// period 0 as the upstream exports always have; the warning makes typos
// visible without rejecting the record.
func (n *Normalizer) slotsFor(rec domain.ShiftRecord) ([]int, error) {
	day, err := time.Parse(DateLayout, strings.TrimSpace(rec.Date))
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", rec.Date, err)
	}

	switch strings.ToLower(strings.TrimSpace(rec.TimeOfDay)) {
	case "jour":
		return []int{Slot(day, domain.PeriodMorning), Slot(day, domain.PeriodAfternoon)}, nil
	case "matin":
		return []int{Slot(day, domain.PeriodMorning)}, nil
	case "apres-midi", "après-midi":
		return []int{Slot(day, domain.PeriodMorning)}, nil
	default:
		n.logger.Printf("normalize shifts: unrecognized time_of_day=%q date=%s, defaulting to morning", rec.TimeOfDay, rec.Date)
		return []int{Slot(day, domain.PeriodMorning)}, nil
	}
}

// Slot encodes a date and period into one integer by concatenating year,
// month, day and period without padding (e.g. 13 May 2019 morning ->
// 20195130). Unpadded concatenation matches the historical slot values
// already stored by upstream systems.
func Slot(day time.Time, period int) int {
	s := fmt.Sprintf("%d%d%d%d", day.Year(), int(day.Month()), day.Day(), period)
	v, err := strconv.Atoi(s)
	if err != nil {
		// Unreachable: the input is digits by construction.
		panic(err)
	}
	return v
}

// FullName builds the canonical grouping key "first last" with surrounding
// whitespace trimmed.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
