package page

import "fmt"

// Strategy names an element identification mechanism. Logical targets are
// addressed through more than one strategy so that at least one survives a
// wording change: localized strings are exactly what varies between runs, so
// no target may be reachable only through its localized text.
type Strategy string

const (
	// StrategyRole locates by accessible role plus accessible name.
	StrategyRole Strategy = "role"
	// StrategyTestID locates by a stable non-visual test identifier.
	StrategyTestID Strategy = "testid"
)

// Selector addresses one element through a single strategy.
type Selector struct {
	Strategy Strategy
	Role     string
	Name     string
	TestID   string
}

// ByRole builds a selector that locates by accessible role and name.
func ByRole(role, name string) Selector {
	return Selector{Strategy: StrategyRole, Role: role, Name: name}
}

// ByTestID builds a selector that locates by stable test identifier.
func ByTestID(id string) Selector {
	return Selector{Strategy: StrategyTestID, TestID: id}
}

func (s Selector) String() string {
	switch s.Strategy {
	case StrategyRole:
		if s.Name == "" {
			return fmt.Sprintf("role=%s", s.Role)
		}
		return fmt.Sprintf("role=%s[name=%q]", s.Role, s.Name)
	case StrategyTestID:
		return fmt.Sprintf("testid=%s", s.TestID)
	default:
		return fmt.Sprintf("unknown strategy %q", string(s.Strategy))
	}
}
