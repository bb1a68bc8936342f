package watch

// Answer is the validated shape of a status API reply.
//
// Homeworks keeps the raw records: the translator re-checks each record's
// fields itself, so invalid records fail loudly instead of being skipped.
type Answer struct {
	Homeworks   []any
	CurrentDate int64
}

// CheckResponse verifies the decoded body before anyone trusts it.
//
// Check order (each short-circuits):
//  1. an error "code" field means the API signaled a logical error
//  2. the body must be a mapping
//  3. "homeworks" must be present
//  4. "current_date" must be present
//  5. "homeworks" must be a list
//
// An empty homeworks list is valid: "no update this cycle" is the
// caller's concern, not a shape problem.
func CheckResponse(body any) (*Answer, error) {
	m, ok := body.(map[string]any)
	if !ok {
		return nil, &ShapeError{Reason: "not a mapping"}
	}
	if code, ok := m["code"]; ok {
		return nil, &RemoteError{Code: stringify(code)}
	}
	hw, ok := m["homeworks"]
	if !ok {
		return nil, &ShapeError{Reason: "missing homeworks"}
	}
	if _, ok := m["current_date"]; !ok {
		return nil, &ShapeError{Reason: "missing current_date"}
	}
	list, ok := hw.([]any)
	if !ok {
		return nil, &ShapeError{Reason: "homeworks not a list"}
	}

	ans := &Answer{Homeworks: list}
	if f, ok := m["current_date"].(float64); ok {
		ans.CurrentDate = int64(f)
	}
	return ans, nil
}
