package watch

import "fmt"

// homeworkVerdicts maps every status the API may report to its
// human-readable verdict. The table is fixed: a status outside it is an
// error, never silently passed through.
var homeworkVerdicts = map[string]string{
	"approved":  "The review is done: the reviewer liked everything. Hooray!",
	"reviewing": "The work was taken for review.",
	"rejected":  "The review is done: the reviewer has remarks.",
}

// ParseStatus turns one homework record into the notification text.
// Pure function: no side effects, deterministic given the verdict table.
func ParseStatus(record any) (string, error) {
	m, ok := record.(map[string]any)
	if !ok {
		return "", &MissingFieldError{Field: "homework_name"}
	}
	name, ok := m["homework_name"]
	if !ok {
		return "", &MissingFieldError{Field: "homework_name"}
	}
	rawStatus, ok := m["status"]
	if !ok {
		return "", &MissingFieldError{Field: "status"}
	}
	status := stringify(rawStatus)
	verdict, ok := homeworkVerdicts[status]
	if !ok {
		return "", &UnknownStatusError{Status: status}
	}
	return fmt.Sprintf("Homework %q changed its review status. %s", stringify(name), verdict), nil
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
