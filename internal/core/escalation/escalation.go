package escalation

// RestType is the reminder category of one rest occurrence.
type RestType int

const (
	EyeRest RestType = iota
	Water
	Walk
)

func (restType RestType) String() string {
	switch restType {
	case Water:
		return "water"
	case Walk:
		return "walk"
	default:
		return "eye_rest"
	}
}

// Resolve picks the category for the rest numbered count.
// Walk wins over Water, Water wins over EyeRest. Zero intervals never match.
func Resolve(count, waterInterval, walkInterval uint32) RestType {
	if walkInterval > 0 && count%walkInterval == 0 {
		return Walk
	}
	if waterInterval > 0 && count%waterInterval == 0 {
		return Water
	}
	return EyeRest
}
