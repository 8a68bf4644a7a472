package prompts

import (
	"fmt"
	"strings"
)

// Template is a named text blob with {placeholder} variables. Template text is
// opaque: no conditionals are evaluated here.
type Template struct {
	Name string
	Vars []string
	Text string
}

// BindingError reports a render call that omitted a declared variable.
type BindingError struct {
	Template string
	Missing  []string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("prompts: template %q missing variables: %s", e.Template, strings.Join(e.Missing, ", "))
}

// Render substitutes every declared variable. All declared variables must be
// supplied; extra unused entries are ignored.
func (t Template) Render(vars map[string]string) (string, error) {
	var missing []string
	for _, name := range t.Vars {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", &BindingError{Template: t.Name, Missing: missing}
	}
	pairs := make([]string, 0, 2*len(t.Vars))
	for _, name := range t.Vars {
		pairs = append(pairs, "{"+name+"}", vars[name])
	}
	return strings.NewReplacer(pairs...).Replace(t.Text), nil
}
