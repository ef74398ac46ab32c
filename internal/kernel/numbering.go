package kernel

import (
	"fmt"

	"github.com/iho/glkernel/internal/domain"
)

const maxPadWidth = 18

// AllocateNumbers reserves count consecutive numbers from seq and returns
// them formatted, together with the advanced sequence and its usage.
func AllocateNumbers(seq domain.DocumentSequence, count int) ([]string, domain.DocumentSequence, domain.SequenceUsage, error) {
	if count <= 0 {
		return nil, seq, domain.SequenceUsage{}, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"sequenceId": seq.SequenceID, "count": count},
			"count %d must be positive", count)
	}

	usage, err := Usage(seq)
	if err != nil {
		return nil, seq, domain.SequenceUsage{}, err
	}

	if int64(count) > usage.Remaining {
		return nil, seq, usage, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"sequenceId": seq.SequenceID, "count": count, "remaining": usage.Remaining},
			"sequence %s has %d numbers left, %d requested", seq.SequenceID, usage.Remaining, count)
	}

	numbers := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		numbers = append(numbers, seq.Prefix+leftZeroPad(seq.LastNumber+int64(i), seq.PadWidth))
	}

	seq.LastNumber += int64(count)
	usage, err = Usage(seq)
	if err != nil {
		return nil, seq, domain.SequenceUsage{}, err
	}

	return numbers, seq, usage, nil
}

// Usage reports capacity consumption of seq. Capacity is 10^PadWidth - 1.
func Usage(seq domain.DocumentSequence) (domain.SequenceUsage, error) {
	if seq.PadWidth <= 0 || seq.PadWidth > maxPadWidth {
		return domain.SequenceUsage{}, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"sequenceId": seq.SequenceID, "padWidth": seq.PadWidth},
			"pad width %d must be between 1 and %d", seq.PadWidth, maxPadWidth)
	}

	var capacity int64 = 1
	for i := 0; i < seq.PadWidth; i++ {
		capacity *= 10
	}
	capacity--

	if seq.LastNumber < 0 || seq.LastNumber > capacity {
		return domain.SequenceUsage{}, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"sequenceId": seq.SequenceID, "lastNumber": seq.LastNumber, "capacity": capacity},
			"last number %d is outside 0..%d", seq.LastNumber, capacity)
	}

	return domain.SequenceUsage{
		Capacity:    capacity,
		Used:        seq.LastNumber,
		Remaining:   capacity - seq.LastNumber,
		Utilization: float64(seq.LastNumber) / float64(capacity),
	}, nil
}

// NearCapacity reports whether utilization has reached threshold (0..1).
func NearCapacity(usage domain.SequenceUsage, threshold float64) bool {
	return usage.Utilization >= threshold
}

func leftZeroPad(n int64, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}
