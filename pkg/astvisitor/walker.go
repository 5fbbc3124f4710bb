// Package astvisitor is the shared traversal every validator rule and
// operation analyzer is built on, grounded on the teacher's
// astvisitor.Walker / RegisterEnterFieldVisitor / Walk idiom (see
// v2/pkg/engine/plan/datasource_filter_visitor.go's findUsedDataSourceVisitor,
// which registers itself on a *astvisitor.Walker and implements
// EnterField(ref int)). This package generalizes that idiom from the
// teacher's arena-indexed ast.Document (fields addressed by int ref) to this
// module's interface-typed ast nodes: visitors receive the node itself
// rather than an index into a shared arena.
package astvisitor

import (
	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// typenameField is the synthetic FieldDefinition for the `__typename`
// meta-field, selectable on any composite type without appearing in its
// FieldsDefinition (spec.md §3.3 Non-goals don't mention it, but every
// composite type supports it implicitly; the original GraphQL spec is
// silent on how an implementation tracks it, so the walker is where this
// repo makes that choice, same as graphql-js's TypeInfo does).
var typenameField = ast.NewParsedFieldDefinition(
	ast.NewName("__typename", ast.Span{}), nil, nil,
	ast.NewNamedTypeRef("String", true, ast.Span{}), nil, ast.Span{},
)

// EnterOperationDefinitionVisitor is notified when traversal enters an
// operation definition, with the walker's EnclosingTypeDefinition already
// set to that operation's root type (nil if no schema was supplied, or the
// schema has no such root).
type EnterOperationDefinitionVisitor interface {
	EnterOperationDefinition(op ast.OperationDefinition, w *Walker)
}

// LeaveOperationDefinitionVisitor is notified when traversal leaves an
// operation definition.
type LeaveOperationDefinitionVisitor interface {
	LeaveOperationDefinition(op ast.OperationDefinition, w *Walker)
}

// EnterFragmentDefinitionVisitor is notified when traversal enters a
// fragment definition.
type EnterFragmentDefinitionVisitor interface {
	EnterFragmentDefinition(f ast.FragmentDefinition, w *Walker)
}

// LeaveFragmentDefinitionVisitor is notified when traversal leaves a
// fragment definition.
type LeaveFragmentDefinitionVisitor interface {
	LeaveFragmentDefinition(f ast.FragmentDefinition, w *Walker)
}

// EnterSelectionSetVisitor is notified when traversal enters a selection
// set (of an operation, fragment, field, or inline fragment).
type EnterSelectionSetVisitor interface {
	EnterSelectionSet(s ast.SelectionSet, w *Walker)
}

// LeaveSelectionSetVisitor is notified when traversal leaves a selection
// set.
type LeaveSelectionSetVisitor interface {
	LeaveSelectionSet(s ast.SelectionSet, w *Walker)
}

// EnterFieldVisitor is notified when traversal enters a field selection.
// fieldDef is the schema's definition of that field on the enclosing type,
// looked up by name; hasFieldDef is false if no schema was supplied, the
// enclosing type was unresolved, or the field does not exist on it (a
// separate rule, not the walker, is responsible for reporting that).
type EnterFieldVisitor interface {
	EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *Walker)
}

// LeaveFieldVisitor is notified when traversal leaves a field selection.
type LeaveFieldVisitor interface {
	LeaveField(f ast.Field, w *Walker)
}

// EnterInlineFragmentVisitor is notified when traversal enters an inline
// fragment.
type EnterInlineFragmentVisitor interface {
	EnterInlineFragment(i ast.InlineFragment, w *Walker)
}

// LeaveInlineFragmentVisitor is notified when traversal leaves an inline
// fragment.
type LeaveInlineFragmentVisitor interface {
	LeaveInlineFragment(i ast.InlineFragment, w *Walker)
}

// EnterFragmentSpreadVisitor is notified when traversal enters a fragment
// spread. The walker does not follow the spread into the referenced
// fragment's selection set (that expansion, with its own cycle guard, is
// field-selections-merge's and the merger's responsibility, not the
// walker's).
type EnterFragmentSpreadVisitor interface {
	EnterFragmentSpread(s ast.FragmentSpread, w *Walker)
}

// LeaveFragmentSpreadVisitor is notified when traversal leaves a fragment
// spread.
type LeaveFragmentSpreadVisitor interface {
	LeaveFragmentSpread(s ast.FragmentSpread, w *Walker)
}

// EnterVariableDefinitionVisitor is notified for each variable definition of
// an operation, in order.
type EnterVariableDefinitionVisitor interface {
	EnterVariableDefinition(v ast.VariableDefinition, w *Walker)
}

// EnterDirectiveVisitor is notified for each directive application,
// wherever it occurs. directiveDef is the schema's definition of that
// directive, looked up by name; location is the DirectiveLocation implied
// by where the directive was applied.
type EnterDirectiveVisitor interface {
	EnterDirective(d ast.DirectiveApplication, directiveDef ast.DirectiveDefinition, hasDirectiveDef bool, location ast.DirectiveLocation, w *Walker)
}

// Walker drives a single top-down traversal of an executable document,
// dispatching to every registered visitor and tracking the schema-relative
// context (EnclosingTypeDefinition, Ancestors) each rule needs. One Walker
// is built once per validation/analysis run and reused across every
// operation and fragment in the document, mirroring the teacher's
// `walker := astvisitor.NewWalker(32); walker.RegisterEnterFieldVisitor(v);
// walker.Walk(operation, definition, report)` call shape.
type Walker struct {
	Schema   ast.SchemaDefinition // nil for schema-unaware rules
	Document ast.ExecutableDocument
	Report   *operationreport.Report

	EnclosingTypeDefinition ast.TypeDefinition
	Ancestors               []ast.HasSpan

	enterOperationDefinition []EnterOperationDefinitionVisitor
	leaveOperationDefinition []LeaveOperationDefinitionVisitor
	enterFragmentDefinition  []EnterFragmentDefinitionVisitor
	leaveFragmentDefinition  []LeaveFragmentDefinitionVisitor
	enterSelectionSet        []EnterSelectionSetVisitor
	leaveSelectionSet        []LeaveSelectionSetVisitor
	enterField               []EnterFieldVisitor
	leaveField               []LeaveFieldVisitor
	enterInlineFragment      []EnterInlineFragmentVisitor
	leaveInlineFragment      []LeaveInlineFragmentVisitor
	enterFragmentSpread      []EnterFragmentSpreadVisitor
	leaveFragmentSpread      []LeaveFragmentSpreadVisitor
	enterVariableDefinition  []EnterVariableDefinitionVisitor
	enterDirective           []EnterDirectiveVisitor

	stop bool
}

// NewWalker constructs an empty Walker. ancestorCapacityHint preallocates
// the ancestor stack, as the teacher's astvisitor.NewWalker(32) does for its
// arena-indexed ancestor stack.
func NewWalker(ancestorCapacityHint int) *Walker {
	return &Walker{Ancestors: make([]ast.HasSpan, 0, ancestorCapacityHint)}
}

func (w *Walker) RegisterEnterOperationDefinitionVisitor(v EnterOperationDefinitionVisitor) {
	w.enterOperationDefinition = append(w.enterOperationDefinition, v)
}
func (w *Walker) RegisterLeaveOperationDefinitionVisitor(v LeaveOperationDefinitionVisitor) {
	w.leaveOperationDefinition = append(w.leaveOperationDefinition, v)
}
func (w *Walker) RegisterEnterFragmentDefinitionVisitor(v EnterFragmentDefinitionVisitor) {
	w.enterFragmentDefinition = append(w.enterFragmentDefinition, v)
}
func (w *Walker) RegisterLeaveFragmentDefinitionVisitor(v LeaveFragmentDefinitionVisitor) {
	w.leaveFragmentDefinition = append(w.leaveFragmentDefinition, v)
}
func (w *Walker) RegisterEnterSelectionSetVisitor(v EnterSelectionSetVisitor) {
	w.enterSelectionSet = append(w.enterSelectionSet, v)
}
func (w *Walker) RegisterLeaveSelectionSetVisitor(v LeaveSelectionSetVisitor) {
	w.leaveSelectionSet = append(w.leaveSelectionSet, v)
}
func (w *Walker) RegisterEnterFieldVisitor(v EnterFieldVisitor) {
	w.enterField = append(w.enterField, v)
}
func (w *Walker) RegisterLeaveFieldVisitor(v LeaveFieldVisitor) {
	w.leaveField = append(w.leaveField, v)
}
func (w *Walker) RegisterEnterInlineFragmentVisitor(v EnterInlineFragmentVisitor) {
	w.enterInlineFragment = append(w.enterInlineFragment, v)
}
func (w *Walker) RegisterLeaveInlineFragmentVisitor(v LeaveInlineFragmentVisitor) {
	w.leaveInlineFragment = append(w.leaveInlineFragment, v)
}
func (w *Walker) RegisterEnterFragmentSpreadVisitor(v EnterFragmentSpreadVisitor) {
	w.enterFragmentSpread = append(w.enterFragmentSpread, v)
}
func (w *Walker) RegisterLeaveFragmentSpreadVisitor(v LeaveFragmentSpreadVisitor) {
	w.leaveFragmentSpread = append(w.leaveFragmentSpread, v)
}
func (w *Walker) RegisterEnterVariableDefinitionVisitor(v EnterVariableDefinitionVisitor) {
	w.enterVariableDefinition = append(w.enterVariableDefinition, v)
}
func (w *Walker) RegisterEnterDirectiveVisitor(v EnterDirectiveVisitor) {
	w.enterDirective = append(w.enterDirective, v)
}

// Register attaches v to every hook it implements. Rule types typically
// implement several of these interfaces on one receiver and call this once
// instead of calling each Register*Visitor individually.
func (w *Walker) Register(v interface{}) {
	if x, ok := v.(EnterOperationDefinitionVisitor); ok {
		w.RegisterEnterOperationDefinitionVisitor(x)
	}
	if x, ok := v.(LeaveOperationDefinitionVisitor); ok {
		w.RegisterLeaveOperationDefinitionVisitor(x)
	}
	if x, ok := v.(EnterFragmentDefinitionVisitor); ok {
		w.RegisterEnterFragmentDefinitionVisitor(x)
	}
	if x, ok := v.(LeaveFragmentDefinitionVisitor); ok {
		w.RegisterLeaveFragmentDefinitionVisitor(x)
	}
	if x, ok := v.(EnterSelectionSetVisitor); ok {
		w.RegisterEnterSelectionSetVisitor(x)
	}
	if x, ok := v.(LeaveSelectionSetVisitor); ok {
		w.RegisterLeaveSelectionSetVisitor(x)
	}
	if x, ok := v.(EnterFieldVisitor); ok {
		w.RegisterEnterFieldVisitor(x)
	}
	if x, ok := v.(LeaveFieldVisitor); ok {
		w.RegisterLeaveFieldVisitor(x)
	}
	if x, ok := v.(EnterInlineFragmentVisitor); ok {
		w.RegisterEnterInlineFragmentVisitor(x)
	}
	if x, ok := v.(LeaveInlineFragmentVisitor); ok {
		w.RegisterLeaveInlineFragmentVisitor(x)
	}
	if x, ok := v.(EnterFragmentSpreadVisitor); ok {
		w.RegisterEnterFragmentSpreadVisitor(x)
	}
	if x, ok := v.(LeaveFragmentSpreadVisitor); ok {
		w.RegisterLeaveFragmentSpreadVisitor(x)
	}
	if x, ok := v.(EnterVariableDefinitionVisitor); ok {
		w.RegisterEnterVariableDefinitionVisitor(x)
	}
	if x, ok := v.(EnterDirectiveVisitor); ok {
		w.RegisterEnterDirectiveVisitor(x)
	}
}

// StopWalking aborts the remainder of the current Walk call. Used by rules
// that detect an error so severe that continuing traversal would only
// produce noise (e.g. a selection set too malformed to usefully analyze
// further).
func (w *Walker) StopWalking() { w.stop = true }

// Path returns the response-name path (spec.md §6) of the node currently
// being visited, for use in operationreport.ExternalError.Path.
func (w *Walker) Path() []string {
	var p []string
	for _, a := range w.Ancestors {
		if f, ok := a.(ast.Field); ok {
			p = append(p, f.FieldResponseName())
		}
	}
	return p
}

// Walk traverses every operation and fragment definition in doc, in
// document order, against schema (which may be nil for rules that don't
// need type information).
func (w *Walker) Walk(doc ast.ExecutableDocument, schema ast.SchemaDefinition, report *operationreport.Report) {
	w.Document = doc
	w.Schema = schema
	w.Report = report
	w.stop = false
	w.Ancestors = w.Ancestors[:0]

	for _, op := range doc.OperationDefinitions() {
		if w.stop {
			return
		}
		w.walkOperationDefinition(op)
	}
	for _, frag := range doc.FragmentDefinitions() {
		if w.stop {
			return
		}
		w.walkFragmentDefinition(frag)
	}
}

func (w *Walker) rootTypeDefinition(opType ast.OperationType) ast.TypeDefinition {
	if w.Schema == nil {
		return nil
	}
	var name string
	switch opType {
	case ast.OperationTypeQuery:
		name = w.Schema.QueryTypeName()
	case ast.OperationTypeMutation:
		name, _ = w.Schema.MutationTypeName()
	case ast.OperationTypeSubscription:
		name, _ = w.Schema.SubscriptionTypeName()
	}
	if name == "" {
		return nil
	}
	def, _ := w.Schema.GetTypeDefinition(name)
	return def
}

func (w *Walker) directiveLocationFor(ancestor ast.HasSpan, opType ast.OperationType) ast.DirectiveLocation {
	switch ancestor.(type) {
	case ast.Field:
		return ast.DirectiveLocationField
	case ast.InlineFragment:
		return ast.DirectiveLocationInlineFragment
	case ast.FragmentSpread:
		return ast.DirectiveLocationFragmentSpread
	case ast.FragmentDefinition:
		return ast.DirectiveLocationFragmentDefinition
	case ast.VariableDefinition:
		return ast.DirectiveLocationVariableDefinition
	}
	switch opType {
	case ast.OperationTypeMutation:
		return ast.DirectiveLocationMutation
	case ast.OperationTypeSubscription:
		return ast.DirectiveLocationSubscription
	default:
		return ast.DirectiveLocationQuery
	}
}

func (w *Walker) walkDirectives(directives []ast.DirectiveApplication, location ast.DirectiveLocation) {
	for _, d := range directives {
		if w.stop {
			return
		}
		var def ast.DirectiveDefinition
		var has bool
		if w.Schema != nil {
			def, has = w.Schema.GetDirectiveDefinition(d.DirectiveName())
		}
		for _, v := range w.enterDirective {
			v.EnterDirective(d, def, has, location, w)
			if w.stop {
				return
			}
		}
	}
}

func (w *Walker) walkOperationDefinition(op ast.OperationDefinition) {
	w.EnclosingTypeDefinition = w.rootTypeDefinition(op.OperationType())
	w.Ancestors = append(w.Ancestors, op)

	for _, v := range w.enterOperationDefinition {
		v.EnterOperationDefinition(op, w)
		if w.stop {
			break
		}
	}

	if !w.stop {
		for _, vd := range op.OperationVariableDefinitions() {
			if w.stop {
				break
			}
			for _, v := range w.enterVariableDefinition {
				v.EnterVariableDefinition(vd, w)
			}
			w.walkDirectives(vd.VariableDirectives(), ast.DirectiveLocationVariableDefinition)
		}
	}
	if !w.stop {
		w.walkDirectives(op.OperationDirectives(), w.directiveLocationFor(nil, op.OperationType()))
	}
	if !w.stop {
		w.walkSelectionSet(op.OperationSelectionSet(), op.OperationType())
	}

	for _, v := range w.leaveOperationDefinition {
		v.LeaveOperationDefinition(op, w)
	}
	w.Ancestors = w.Ancestors[:len(w.Ancestors)-1]
	w.EnclosingTypeDefinition = nil
}

func (w *Walker) walkFragmentDefinition(f ast.FragmentDefinition) {
	var enclosing ast.TypeDefinition
	if w.Schema != nil {
		enclosing, _ = w.Schema.GetTypeDefinition(f.FragmentTypeCondition())
	}
	w.EnclosingTypeDefinition = enclosing
	w.Ancestors = append(w.Ancestors, f)

	for _, v := range w.enterFragmentDefinition {
		v.EnterFragmentDefinition(f, w)
		if w.stop {
			break
		}
	}
	if !w.stop {
		w.walkDirectives(f.FragmentDirectives(), ast.DirectiveLocationFragmentDefinition)
	}
	if !w.stop {
		w.walkSelectionSet(f.FragmentSelectionSet(), ast.OperationTypeQuery)
	}

	for _, v := range w.leaveFragmentDefinition {
		v.LeaveFragmentDefinition(f, w)
	}
	w.Ancestors = w.Ancestors[:len(w.Ancestors)-1]
	w.EnclosingTypeDefinition = nil
}

func (w *Walker) walkSelectionSet(s ast.SelectionSet, opType ast.OperationType) {
	w.Ancestors = append(w.Ancestors, s)
	for _, v := range w.enterSelectionSet {
		v.EnterSelectionSet(s, w)
		if w.stop {
			break
		}
	}

	if !w.stop {
		for _, sel := range s.Selections() {
			if w.stop {
				break
			}
			switch n := sel.(type) {
			case ast.Field:
				w.walkField(n, opType)
			case ast.InlineFragment:
				w.walkInlineFragment(n, opType)
			case ast.FragmentSpread:
				w.walkFragmentSpread(n)
			}
		}
	}

	for _, v := range w.leaveSelectionSet {
		v.LeaveSelectionSet(s, w)
	}
	w.Ancestors = w.Ancestors[:len(w.Ancestors)-1]
}

func (w *Walker) fieldDefinitionFor(name string) (ast.FieldDefinition, bool) {
	if name == "__typename" {
		return typenameField, true
	}
	if w.EnclosingTypeDefinition == nil {
		return nil, false
	}
	holder, ok := w.EnclosingTypeDefinition.(ast.FieldsDefinitionHolder)
	if !ok {
		return nil, false
	}
	for _, f := range holder.FieldsDefinition() {
		if f.FieldName() == name {
			return f, true
		}
	}
	return nil, false
}

func (w *Walker) walkField(f ast.Field, opType ast.OperationType) {
	fieldDef, hasFieldDef := w.fieldDefinitionFor(f.FieldSelectionName())
	w.Ancestors = append(w.Ancestors, f)

	for _, v := range w.enterField {
		v.EnterField(f, fieldDef, hasFieldDef, w)
		if w.stop {
			break
		}
	}

	if !w.stop {
		w.walkDirectives(f.FieldSelectionDirectives(), ast.DirectiveLocationField)
	}

	if !w.stop {
		if sub, ok := f.FieldSubSelectionSet(); ok {
			previousEnclosing := w.EnclosingTypeDefinition
			if hasFieldDef && w.Schema != nil {
				w.EnclosingTypeDefinition, _ = w.Schema.GetTypeDefinition(fieldDef.FieldType().NamedTypeName())
			} else {
				w.EnclosingTypeDefinition = nil
			}
			w.walkSelectionSet(sub, opType)
			w.EnclosingTypeDefinition = previousEnclosing
		}
	}

	for _, v := range w.leaveField {
		v.LeaveField(f, w)
	}
	w.Ancestors = w.Ancestors[:len(w.Ancestors)-1]
}

func (w *Walker) walkInlineFragment(i ast.InlineFragment, opType ast.OperationType) {
	previousEnclosing := w.EnclosingTypeDefinition
	if typeCondition, ok := i.InlineFragmentTypeCondition(); ok && w.Schema != nil {
		w.EnclosingTypeDefinition, _ = w.Schema.GetTypeDefinition(typeCondition)
	}
	w.Ancestors = append(w.Ancestors, i)

	for _, v := range w.enterInlineFragment {
		v.EnterInlineFragment(i, w)
		if w.stop {
			break
		}
	}
	if !w.stop {
		w.walkDirectives(i.InlineFragmentDirectives(), ast.DirectiveLocationInlineFragment)
	}
	if !w.stop {
		w.walkSelectionSet(i.InlineFragmentSelectionSet(), opType)
	}

	for _, v := range w.leaveInlineFragment {
		v.LeaveInlineFragment(i, w)
	}
	w.Ancestors = w.Ancestors[:len(w.Ancestors)-1]
	w.EnclosingTypeDefinition = previousEnclosing
}

func (w *Walker) walkFragmentSpread(s ast.FragmentSpread) {
	w.Ancestors = append(w.Ancestors, s)
	for _, v := range w.enterFragmentSpread {
		v.EnterFragmentSpread(s, w)
		if w.stop {
			break
		}
	}
	if !w.stop {
		w.walkDirectives(s.FragmentSpreadDirectives(), ast.DirectiveLocationFragmentSpread)
	}
	for _, v := range w.leaveFragmentSpread {
		v.LeaveFragmentSpread(s, w)
	}
	w.Ancestors = w.Ancestors[:len(w.Ancestors)-1]
}
