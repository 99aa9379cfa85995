package lir

import (
	"errors"
	"fmt"

	"lumen/internal/decl"
)

// Validate checks lowered-module invariants. A violation indicates a bug
// earlier in the pipeline, never a user error, so any failure is fatal to
// the whole unit.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for i := range m.Funcs {
		u := &m.Funcs[i]
		if err := validateFuncUnit(u); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", u.Desc.Name, err))
		}
	}
	for i := range m.Props {
		u := &m.Props[i]
		if err := validatePropUnit(u); err != nil {
			errs = append(errs, fmt.Errorf("property %s: %w", u.Desc.Name, err))
		}
	}
	for i := range m.Hoisted {
		if err := validateTemplate(m.Hoisted[i].Fn); err != nil {
			errs = append(errs, fmt.Errorf("hoisted[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func validateFuncUnit(u *FuncUnit) error {
	if u.Body.IsBodiless() {
		// Bodiless registration is only legal for abstract members.
		if u.Desc.Modality != decl.ModalityAbstract {
			return fmt.Errorf("lir: bodiless emission for non-abstract member")
		}
		return nil
	}
	fn := u.Body.Func()
	if fn == nil {
		return fmt.Errorf("lir: emission without function")
	}

	var errs []error

	// Emitted units are always invocable entry points; templates go to the
	// hoisted list instead.
	if fn.IsInlineTemplate() {
		errs = append(errs, fmt.Errorf("lir: inline template emitted as member"))
	}
	if fn.Name == "" {
		errs = append(errs, fmt.Errorf("lir: emitted function has no name"))
	}

	// A suspend function finishes lowering as exactly one of state machine
	// or inline template, never both, never neither.
	if u.Desc.IsSuspend() {
		coro := fn.IsCoroutine()
		tmpl := fn.IsInlineTemplate()
		if coro == tmpl {
			errs = append(errs, fmt.Errorf("lir: suspend function with coroutine=%v inline-template=%v", coro, tmpl))
		}
	}
	// The executable half of a split must rebuild the capture environment
	// and return the function value.
	if u.Desc.IsSuspend() && u.Desc.IsInline() && u.Desc.ShouldExport() {
		if err := validateExecutableShape(fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// validateExecutableShape checks the capture-and-return pattern of the
// executable half of a coroutine split: the body must end by returning a
// function value.
func validateExecutableShape(fn *Func) error {
	if len(fn.Body) == 0 {
		return fmt.Errorf("lir: executable declaration with empty body")
	}
	last := fn.Body[len(fn.Body)-1]
	if last.Kind != StmtReturnFunc || last.Fn == nil {
		return fmt.Errorf("lir: executable declaration does not return a function value")
	}
	return nil
}

func validatePropUnit(u *PropUnit) error {
	var errs []error
	if u.Getter == nil {
		errs = append(errs, fmt.Errorf("lir: property without getter"))
	}
	if u.Desc.IsVar() && u.Setter == nil {
		errs = append(errs, fmt.Errorf("lir: var property without setter"))
	}
	if !u.Desc.IsVar() && u.Setter != nil {
		errs = append(errs, fmt.Errorf("lir: val property with setter"))
	}
	return errors.Join(errs...)
}

func validateTemplate(fn *Func) error {
	if fn == nil {
		return fmt.Errorf("lir: hoisted entry without function")
	}
	var errs []error
	if fn.Name != "" {
		errs = append(errs, fmt.Errorf("lir: template named %q, must be unnamed", fn.Name))
	}
	if !fn.IsInlineTemplate() {
		errs = append(errs, fmt.Errorf("lir: hoisted function missing inline-template flag"))
	}
	if fn.IsCoroutine() {
		errs = append(errs, fmt.Errorf("lir: template still flagged for state-machine transform"))
	}
	return errors.Join(errs...)
}
