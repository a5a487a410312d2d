package validator

// CompareData returns the entries of formData whose key is missing from
// originData or whose value differs from it. List values are compared in
// their comma joined form, so []string{"1", "2"} equals "1,2". Returned
// values are the original formData values.
func CompareData(formData, originData map[string]any) map[string]any {
	diff := make(map[string]any)
	for key, val := range formData {
		origin, ok := originData[key]
		if ok && stringify(val) == stringify(origin) {
			continue
		}
		diff[key] = val
	}
	return diff
}
