package entity

// TimeSlot is one of the fixed daily appointment slots. Slots are not stored
// entities: a slot with no booking for a doctor and date is free.
type TimeSlot string

const (
	Slot9To10am  TimeSlot = "9-10am"
	Slot10To11am TimeSlot = "10-11am"
	Slot11To12am TimeSlot = "11-12am"
	Slot12To1pm  TimeSlot = "12-1pm"
	Slot1To2pm   TimeSlot = "1-2pm"
	Slot2To3pm   TimeSlot = "2-3pm"
	Slot3To4pm   TimeSlot = "3-4pm"
	Slot4To5pm   TimeSlot = "4-5pm"
)

var timeSlots = [...]TimeSlot{
	Slot9To10am,
	Slot10To11am,
	Slot11To12am,
	Slot12To1pm,
	Slot1To2pm,
	Slot2To3pm,
	Slot3To4pm,
	Slot4To5pm,
}

// TimeSlots returns the daily slots in display order.
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(timeSlots))
	copy(out, timeSlots[:])
	return out
}

// ParseTimeSlot matches s against the slot vocabulary. Matching is case-sensitive.
func ParseTimeSlot(s string) (TimeSlot, bool) {
	for _, slot := range timeSlots {
		if string(slot) == s {
			return slot, true
		}
	}
	return "", false
}

// SlotAvailability is the resolved state of one slot.
type SlotAvailability struct {
	Slot      TimeSlot `json:"slot"`
	Available bool     `json:"available"`
}

// ResolveSlotAvailability marks a slot unavailable only when every candidate
// doctor already holds a booking at it. Bookings for doctors outside the
// candidate set are ignored. No candidates means nothing is bookable and the
// result is empty.
func ResolveSlotAvailability(candidates []DoctorID, bookings []Booking) []SlotAvailability {
	if len(candidates) == 0 {
		return []SlotAvailability{}
	}

	wanted := make(map[DoctorID]struct{}, len(candidates))
	for _, id := range candidates {
		wanted[id] = struct{}{}
	}

	taken := make(map[TimeSlot]map[DoctorID]struct{}, len(timeSlots))
	for _, b := range bookings {
		if b.DoctorID == nil {
			continue
		}
		if _, ok := wanted[*b.DoctorID]; !ok {
			continue
		}
		if taken[b.TimeSlot] == nil {
			taken[b.TimeSlot] = make(map[DoctorID]struct{})
		}
		taken[b.TimeSlot][*b.DoctorID] = struct{}{}
	}

	out := make([]SlotAvailability, 0, len(timeSlots))
	for _, slot := range timeSlots {
		out = append(out, SlotAvailability{
			Slot:      slot,
			Available: len(taken[slot]) < len(wanted),
		})
	}
	return out
}
