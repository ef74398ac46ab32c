package kernel

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/iho/glkernel/internal/domain"
)

// ValidateDimensions checks every line against the dimension definitions and
// reports all violations at once.
func ValidateDimensions(lines []domain.DimensionedLine, defs []domain.DimensionDefinition) error {
	byCode := make(map[string]domain.DimensionDefinition, len(defs))
	for _, d := range defs {
		byCode[d.Code] = d
	}

	var result *multierror.Error

	for i, line := range lines {
		ref := line.LineRef
		if ref == "" {
			ref = fmt.Sprintf("line %d", i)
		}

		for _, d := range defs {
			if !d.Required || !d.Active {
				continue
			}
			if v, ok := line.Dimensions[d.Code]; !ok || v == "" {
				result = multierror.Append(result, fmt.Errorf("%s: required dimension %s is missing", ref, d.Code))
			}
		}

		codes := make([]string, 0, len(line.Dimensions))
		for code := range line.Dimensions {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		for _, code := range codes {
			value := line.Dimensions[code]
			d, ok := byCode[code]
			switch {
			case !ok:
				result = multierror.Append(result, fmt.Errorf("%s: unknown dimension %s", ref, code))
			case !d.Active:
				result = multierror.Append(result, fmt.Errorf("%s: dimension %s is inactive", ref, code))
			case len(d.AllowedValues) > 0 && !slices.Contains(d.AllowedValues, value):
				result = multierror.Append(result, fmt.Errorf("%s: value %q is not allowed for dimension %s", ref, value, code))
			}
		}
	}

	if result.ErrorOrNil() == nil {
		return nil
	}

	violations := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		violations = append(violations, e.Error())
	}
	return domain.NewValidationError(domain.CategoryStructural,
		map[string]any{"violations": violations},
		"%d dimension violation(s): %s", len(violations), strings.Join(violations, "; "))
}
