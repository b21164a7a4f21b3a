package valueobject

// Check is a predicate over a value object, composable the way
// specifications are.
type Check func(*Object) bool

// And creates a Check satisfied when every given Check is.
func And(checks ...Check) Check {
	return func(o *Object) bool {
		for _, check := range checks {
			if !check(o) {
				return false
			}
		}
		return true
	}
}

// Or creates a Check satisfied when at least one given Check is.
func Or(checks ...Check) Check {
	return func(o *Object) bool {
		for _, check := range checks {
			if check(o) {
				return true
			}
		}
		return false
	}
}

// Not creates the inverse of the given Check.
func Not(check Check) Check {
	return func(o *Object) bool {
		return !check(o)
	}
}

// Property creates a Check over one property's value.
func Property(name string, predicate func(value any) bool) Check {
	return func(o *Object) bool {
		return predicate(o.Get(name))
	}
}

// Rule pairs a Check with the failure collected when it is not satisfied.
// An empty Property collects an unscoped failure.
type Rule struct {
	Property string
	Message  string
	Check    Check
}

// Rules builds a ValidationFailures hook from a rule list: every
// unsatisfied rule appends its failure, in rule order.
func Rules(rules ...Rule) func(*Object, *FailureCollector) {
	return func(o *Object, c *FailureCollector) {
		for _, rule := range rules {
			if rule.Check(o) {
				continue
			}
			if rule.Property == "" {
				c.Add(rule.Message)
				continue
			}
			c.For(rule.Property).Add(rule.Message)
		}
	}
}
