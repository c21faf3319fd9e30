package transform

import (
	"fmt"

	"github.com/eladbash/jdx/internal/jsonval"
)

// transformAggregate handles :sum, :avg, :min, and :max.
//
// With no argument the elements themselves are the numeric inputs; with a
// field argument the named field is read from each element. Non-numeric
// elements are skipped silently. :avg/:min/:max of an empty numeric set is
// null; :sum of an empty set is 0.
func transformAggregate(v jsonval.Value, cmd, field string) (jsonval.Value, error) {
	arr, ok := v.(jsonval.Array)
	if !ok {
		return nil, fmt.Errorf("%s requires an array", cmd)
	}

	nums := extractNumbers(arr, field)

	switch cmd {
	case ":sum":
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return jsonval.Number(total), nil

	case ":avg":
		if len(nums) == 0 {
			return jsonval.Null{}, nil
		}
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return jsonval.Number(total / float64(len(nums))), nil

	case ":min":
		if len(nums) == 0 {
			return jsonval.Null{}, nil
		}
		min := nums[0]
		for _, n := range nums[1:] {
			if n < min {
				min = n
			}
		}
		return jsonval.Number(min), nil

	case ":max":
		if len(nums) == 0 {
			return jsonval.Null{}, nil
		}
		max := nums[0]
		for _, n := range nums[1:] {
			if n > max {
				max = n
			}
		}
		return jsonval.Number(max), nil

	default:
		return nil, fmt.Errorf("unknown aggregate command: %s", cmd)
	}
}

// extractNumbers collects the numeric inputs for an aggregate. Whole
// elements when field is empty, otherwise the named field per element.
func extractNumbers(arr jsonval.Array, field string) []float64 {
	nums := make([]float64, 0, len(arr))
	for _, item := range arr {
		if field == "" {
			if n, ok := item.(jsonval.Number); ok {
				nums = append(nums, float64(n))
			}
			continue
		}
		obj, ok := item.(*jsonval.Object)
		if !ok {
			continue
		}
		fv, found := obj.Get(field)
		if !found {
			continue
		}
		if n, ok := fv.(jsonval.Number); ok {
			nums = append(nums, float64(n))
		}
	}
	return nums
}
