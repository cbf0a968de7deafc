package bytesize

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is a byte count that unmarshals from human-readable strings such as
// "100Mi", "1.5GiB", "64KB", or plain numbers.
//
// Supported formats:
//   - Plain numbers: 1024, 104857600
//   - Binary units (×1024): Ki/KiB, Mi/MiB, Gi/GiB, Ti/TiB
//   - Decimal units (×1000): K/KB, M/MB, G/GB, T/TB
//   - Bytes: B
//
// Unit suffixes are case-insensitive and may be separated from the number by
// whitespace.
type Size uint64

// Common size constants
const (
	B  Size = 1
	KB Size = 1000
	MB Size = 1000 * KB
	GB Size = 1000 * MB
	TB Size = 1000 * GB

	KiB Size = 1024
	MiB Size = 1024 * KiB
	GiB Size = 1024 * MiB
	TiB Size = 1024 * GiB
)

// Parse converts a human-readable size string into a Size.
// It accepts forms like "100Mi", "1GiB", "64KB", "1.5Gi", or "1024".
func Parse(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	// Split into numeric prefix and unit suffix.
	cut := len(s)
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			cut = i
			break
		}
	}

	numStr := s[:cut]
	unit := strings.TrimSpace(s[cut:])
	if numStr == "" {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}

	mult, err := unitMultiplier(unit)
	if err != nil {
		return 0, err
	}

	if strings.Contains(numStr, ".") {
		num, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number in size: %q", numStr)
		}
		return Size(num * float64(mult)), nil
	}

	num, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number in size: %q", numStr)
	}
	return Size(num) * mult, nil
}

func unitMultiplier(unit string) (Size, error) {
	switch strings.ToLower(unit) {
	case "", "b":
		return B, nil
	case "k", "kb":
		return KB, nil
	case "m", "mb":
		return MB, nil
	case "g", "gb":
		return GB, nil
	case "t", "tb":
		return TB, nil
	case "ki", "kib":
		return KiB, nil
	case "mi", "mib":
		return MiB, nil
	case "gi", "gib":
		return GiB, nil
	case "ti", "tib":
		return TiB, nil
	default:
		return 0, fmt.Errorf("unknown size unit: %q", unit)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so Size can be decoded
// directly from config files via mapstructure.
func (s *Size) UnmarshalText(text []byte) error {
	size, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = size
	return nil
}

// String returns a human-readable representation using binary units.
func (s Size) String() string {
	switch {
	case s >= TiB:
		return fmt.Sprintf("%.2fTiB", float64(s)/float64(TiB))
	case s >= GiB:
		return fmt.Sprintf("%.2fGiB", float64(s)/float64(GiB))
	case s >= MiB:
		return fmt.Sprintf("%.2fMiB", float64(s)/float64(MiB))
	case s >= KiB:
		return fmt.Sprintf("%.2fKiB", float64(s)/float64(KiB))
	default:
		return fmt.Sprintf("%dB", uint64(s))
	}
}

// Uint64 returns the size as a uint64.
func (s Size) Uint64() uint64 {
	return uint64(s)
}

// Int64 returns the size as an int64.
// Note: this may overflow for very large values.
func (s Size) Int64() int64 {
	return int64(s)
}
