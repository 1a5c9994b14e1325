package results

// LowSeatsThreshold is the share of seats, in percent, under which a flight
// is flagged as running out.
const LowSeatsThreshold = 30

type Badge int

const (
	Plenty Badge = iota
	LowSeats
	SoldOut
)

func (b Badge) String() string {
	switch b {
	case LowSeats:
		return "low-seats"
	case SoldOut:
		return "sold-out"
	}
	return ""
}

func Scarcity(available, total int) Badge {
	switch {
	case available <= 0:
		return SoldOut
	case total > 0 && available*100 < LowSeatsThreshold*total:
		return LowSeats
	}
	return Plenty
}
