package types

import "fmt"

// CurrentVersion is the only program version this toolchain accepts
// (spec.md §3.4).
const CurrentVersion = 1

// Program is the typed representation of a Zircon program (spec.md §3.4).
// Preprocess and Circuit are kept as the original statement text, not a
// pre-parsed AST: the VerifyContext (§3.8) must carry the statement
// sequences verbatim, and keeping the canonical parse in the lang package
// avoids a types<->lang import cycle (lang depends on types, not the
// reverse).
type Program struct {
	Version    int
	Secret     []Signal
	Public     []Signal
	Preprocess []string
	Circuit    []string
}

// AllSignals returns the secret and public signals in declaration order.
func (p *Program) AllSignals() []Signal {
	out := make([]Signal, 0, len(p.Secret)+len(p.Public))
	out = append(out, p.Secret...)
	out = append(out, p.Public...)
	return out
}

// Lookup returns the named signal and whether it was found.
func (p *Program) Lookup(name string) (Signal, bool) {
	for _, s := range p.Secret {
		if s.Name == name {
			return s, true
		}
	}
	for _, s := range p.Public {
		if s.Name == name {
			return s, true
		}
	}
	return Signal{}, false
}

// ApplyOverrides replaces placeholder signal values with the supplied
// overrides (spec.md §4.2: "apply_overrides replaces any signal whose
// value is the placeholder '?' with the override's value"). Overriding a
// signal that already carries a concrete value is an error, as is an
// override for a name the program does not declare.
func (p *Program) ApplyOverrides(overrides map[string]Value) error {
	apply := func(signals []Signal) error {
		for i := range signals {
			ov, ok := overrides[signals[i].Name]
			if !ok {
				continue
			}
			if !signals[i].Value.IsPlaceholder() {
				return fmt.Errorf("signal %q already has a value; cannot override", signals[i].Name)
			}
			signals[i].Value = ov
		}
		return nil
	}
	if err := apply(p.Secret); err != nil {
		return err
	}
	if err := apply(p.Public); err != nil {
		return err
	}
	for name := range overrides {
		if _, ok := p.Lookup(name); !ok {
			return fmt.Errorf("override given for undeclared signal %q", name)
		}
	}
	return nil
}

// ValidateNamespace enforces spec.md §3.3: a name may appear in at most
// one of {secret, public}. Preprocess-derived names are checked by the
// preprocess engine as they are introduced, since they are not known
// until that phase executes.
func (p *Program) ValidateNamespace() error {
	seen := make(map[string]string, len(p.Secret)+len(p.Public))
	check := func(sig Signal, section string) error {
		if !ValidName(sig.Name) {
			return fmt.Errorf("invalid signal name %q", sig.Name)
		}
		if prev, ok := seen[sig.Name]; ok {
			return fmt.Errorf("signal %q declared in both %s and %s", sig.Name, prev, section)
		}
		seen[sig.Name] = section
		return nil
	}
	for _, s := range p.Secret {
		if err := check(s, "secret"); err != nil {
			return err
		}
	}
	for _, s := range p.Public {
		if err := check(s, "public"); err != nil {
			return err
		}
	}
	return nil
}
