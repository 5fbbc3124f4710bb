// Package operationmerge implements spec.md §4.6: merging N independently
// parsed operations (sharing one operation type) into a single operation
// equivalent to a client issuing them all at once, with shared variables and
// every fragment spread inlined. Grounded on
// original_source/bluejay-operation-merger/src/*.rs, carried into this
// module's self-driven-descent idiom (the same one pkg/operationanalysis
// and pkg/astvalidation/rules' field-selections-merge already use) since
// flattening fragment-spread boundaries while tracking enclosing type is
// exactly what the merge algorithm needs too.
package operationmerge

import (
	"fmt"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astvalidation"
)

// Source is one operation being fed into a merge, paired with the document
// it came from (for fragment-spread resolution). The caller is responsible
// for locating the operation by name or position within its document, per
// spec.md §4.6's "identified by name or position".
type Source struct {
	Document  ast.ExecutableDocument
	Operation ast.OperationDefinition
}

// Merge combines sources into one operation. It fails fast: the first
// incompatibility encountered is returned and nothing partial is produced,
// per spec.md §5 ("merge errors are fatal to that merge operation only").
func Merge(sources []Source, schema ast.SchemaDefinition) (*MergedExecutableDocument, *Error) {
	if len(sources) == 0 {
		return &MergedExecutableDocument{operation: &MergedOperationDefinition{
			selectionSet: &MergedSelectionSet{},
		}}, nil
	}

	opType := sources[0].Operation.OperationType()
	for _, s := range sources[1:] {
		if s.Operation.OperationType() != opType {
			name, _ := s.Operation.OperationName()
			return nil, errOperationTypeMismatch(name)
		}
	}

	m := &merger{schema: schema, idGen: NewIdGenerator()}

	renames := make([]map[string]string, len(sources))
	variables, err := m.mergeVariableDefinitions(sources, renames)
	if err != nil {
		return nil, err
	}

	root := rootTypeName(schema, opType)
	roots := make([]selSource, len(sources))
	for i, s := range sources {
		if err := checkNoDirectives(s.Operation.OperationDirectives()); err != nil {
			return nil, err
		}
		roots[i] = selSource{
			set:           s.Operation.OperationSelectionSet(),
			enclosingType: root,
			cache:         astvalidation.NewCache(s.Document, schema),
			renames:       renames[i],
		}
	}

	merged, err := m.mergeSelections(roots)
	if err != nil {
		return nil, err
	}

	var namePtr *string
	if name, ok := sources[0].Operation.OperationName(); ok {
		namePtr = &name
	}

	op := &MergedOperationDefinition{
		opType:       opType,
		name:         namePtr,
		variables:    variables,
		selectionSet: merged,
	}
	return &MergedExecutableDocument{operation: op}, nil
}

type merger struct {
	schema ast.SchemaDefinition
	idGen  *IdGenerator
}

// mergeVariableDefinitions merges every source's variable declarations into
// one set, renaming on collision (step 5) and recording each source's
// original-name → final-name table in renames so argument values referring
// to a renamed variable can be rewritten during selection merging.
func (m *merger) mergeVariableDefinitions(sources []Source, renames []map[string]string) ([]ast.VariableDefinition, *Error) {
	type entry struct {
		typ     ast.TypeRef
		def     *ast.Value
		suffix  bool
	}
	final := make(map[string]entry)
	var order []string

	for i, s := range sources {
		renames[i] = make(map[string]string)
		for _, vd := range s.Operation.OperationVariableDefinitions() {
			suffix, replace, err := checkVariableDirectives(vd.VariableDirectives())
			if err != nil {
				return nil, err
			}
			name := vd.VariableName()
			var defPtr *ast.Value
			if def, ok := vd.VariableDefault(); ok {
				defPtr = &def
			}

			existing, ok := final[name]
			switch {
			case !ok:
				final[name] = entry{typ: vd.VariableType(), def: defPtr, suffix: suffix}
				order = append(order, name)
				renames[i][name] = name
			case replace:
				final[name] = entry{typ: vd.VariableType(), def: defPtr, suffix: suffix}
				renames[i][name] = name
			case variableCompatible(existing.typ, existing.def, vd.VariableType(), defPtr):
				renames[i][name] = name
			case suffix || existing.suffix:
				newName := fmt.Sprintf("%s_%d", name, m.idGen.Next())
				final[newName] = entry{typ: vd.VariableType(), def: defPtr, suffix: suffix}
				order = append(order, newName)
				renames[i][name] = newName
			case !existing.typ.Equal(vd.VariableType()):
				return nil, errVariableTypeMismatch(name, vd.Span())
			default:
				return nil, errVariableDefaultValueMismatch(name, vd.Span())
			}
		}
	}

	defs := make([]ast.VariableDefinition, 0, len(order))
	for _, name := range order {
		e := final[name]
		defs = append(defs, &MergedVariableDefinition{name: name, typ: e.typ, defaultValue: e.def})
	}
	return defs, nil
}

func variableCompatible(aType ast.TypeRef, aDef *ast.Value, bType ast.TypeRef, bDef *ast.Value) bool {
	if !aType.Equal(bType) {
		return false
	}
	if (aDef == nil) != (bDef == nil) {
		return false
	}
	if aDef != nil && !ast.Equal(*aDef, *bDef) {
		return false
	}
	return true
}

// selSource pairs a selection set with the schema type it's selected
// against, the fragment cache of the document it came from, and its
// source's variable-rename table — everything flatten/mergeSelections
// needs to carry across a fragment-spread boundary.
type selSource struct {
	set           ast.SelectionSet
	enclosingType string
	cache         *astvalidation.Cache
	renames       map[string]string
}

// fieldEntry is one field selection reached while flattening, annotated
// with the context it needs to be merged and recursed into.
type fieldEntry struct {
	field           ast.Field
	enclosingType   string
	cache           *astvalidation.Cache
	renames         map[string]string
	suffixRequested bool
}

// mergeSelections flattens every root (inlining fragment spreads and
// descending through inline fragments) into field entries, groups them by
// response name, and merges or disambiguates each group (steps 4 and 7).
func (m *merger) mergeSelections(roots []selSource) (*MergedSelectionSet, *Error) {
	var entries []fieldEntry
	for _, r := range roots {
		onPath := make(map[string]bool)
		for _, sel := range r.set.Selections() {
			if err := m.flatten(sel, r.enclosingType, r.cache, r.renames, onPath, &entries); err != nil {
				return nil, err
			}
		}
	}

	var order []string
	groups := make(map[string][]fieldEntry)
	for _, e := range entries {
		rn := e.field.FieldResponseName()
		if _, ok := groups[rn]; !ok {
			order = append(order, rn)
		}
		groups[rn] = append(groups[rn], e)
	}

	var out []ast.Selection
	for _, rn := range order {
		selections, err := m.mergeGroup(rn, groups[rn])
		if err != nil {
			return nil, err
		}
		out = append(out, selections...)
	}
	return &MergedSelectionSet{selections: out}, nil
}

// flatten appends sel's field selections to out, descending through inline
// fragments (same level, type condition inherited or overridden) and
// inlining fragment spreads (same level, target's own type condition),
// exactly the shape field-selections-merge's flatten already establishes
// for validation — here it also builds the output tree instead of only
// checking it.
func (m *merger) flatten(sel ast.Selection, enclosingType string, cache *astvalidation.Cache, renames map[string]string, onPath map[string]bool, out *[]fieldEntry) *Error {
	switch n := sel.(type) {
	case ast.Field:
		suffix, err := checkFieldDirectives(n.FieldSelectionDirectives())
		if err != nil {
			return err
		}
		*out = append(*out, fieldEntry{field: n, enclosingType: enclosingType, cache: cache, renames: renames, suffixRequested: suffix})
		return nil

	case ast.InlineFragment:
		if err := checkNoDirectives(n.InlineFragmentDirectives()); err != nil {
			return err
		}
		typeName := enclosingType
		if tc, ok := n.InlineFragmentTypeCondition(); ok {
			typeName = tc
		}
		for _, s := range n.InlineFragmentSelectionSet().Selections() {
			if err := m.flatten(s, typeName, cache, renames, onPath, out); err != nil {
				return err
			}
		}
		return nil

	case ast.FragmentSpread:
		if err := checkNoDirectives(n.FragmentSpreadDirectives()); err != nil {
			return err
		}
		name := n.FragmentSpreadName()
		if onPath[name] {
			return nil
		}
		frag, ok := cache.FragmentDefinition(name)
		if !ok {
			return errFragmentDefinitionNotFound(name, n.Span())
		}
		if err := checkNoDirectives(frag.FragmentDirectives()); err != nil {
			return err
		}
		onPath[name] = true
		typeName := frag.FragmentTypeCondition()
		for _, s := range frag.FragmentSelectionSet().Selections() {
			if err := m.flatten(s, typeName, cache, renames, onPath, out); err != nil {
				onPath[name] = false
				return err
			}
		}
		onPath[name] = false
		return nil

	default:
		return nil
	}
}

// mergeGroup resolves one response-name group into one or more output
// selections. A group that is entirely merge-compatible collapses to a
// single field; an incompatible group with no @suffixOnMerge anywhere is
// an error; an incompatible group where some entry asked for
// @suffixOnMerge is split by compatibility class, with every class after
// the first given a freshly suffixed response name (step 6/7).
func (m *merger) mergeGroup(responseName string, group []fieldEntry) ([]ast.Selection, *Error) {
	classes := m.partitionByCompatibility(group)
	if len(classes) == 1 {
		sel, err := m.buildMergedField(responseName, classes[0])
		if err != nil {
			return nil, err
		}
		return []ast.Selection{sel}, nil
	}

	suffixRequested := false
	for _, e := range group {
		if e.suffixRequested {
			suffixRequested = true
			break
		}
	}
	if !suffixRequested {
		return nil, m.conflictError(responseName, classes)
	}

	out := make([]ast.Selection, 0, len(classes))
	for i, class := range classes {
		name := responseName
		if i > 0 {
			name = fmt.Sprintf("%s_%d", responseName, m.idGen.Next())
		}
		sel, err := m.buildMergedField(name, class)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

// partitionByCompatibility groups entries that share a field name and
// merge-compatible arguments, preserving first-seen order of classes.
func (m *merger) partitionByCompatibility(group []fieldEntry) [][]fieldEntry {
	var classes [][]fieldEntry
	for _, e := range group {
		placed := false
		for i, class := range classes {
			rep := class[0]
			if rep.field.FieldSelectionName() == e.field.FieldSelectionName() && argumentsCompatible(rep.field, e.field) {
				classes[i] = append(classes[i], e)
				placed = true
				break
			}
		}
		if !placed {
			classes = append(classes, []fieldEntry{e})
		}
	}
	return classes
}

func (m *merger) conflictError(responseName string, classes [][]fieldEntry) *Error {
	a, b := classes[0][0], classes[1][0]
	if a.field.FieldSelectionName() != b.field.FieldSelectionName() {
		return errDifferingFieldNamesForResponseName(responseName, b.field.Span())
	}
	return errArgumentsNotCompatible(responseName, b.field.Span())
}

// buildMergedField builds one output field for a compatibility class,
// taking its representative's arguments (rewritten for any variable
// renames) and recursively merging every member's sub-selection set, if
// any, as the next level of roots.
func (m *merger) buildMergedField(responseName string, class []fieldEntry) (ast.Selection, *Error) {
	first := class[0]
	args := rewriteArguments(first.field.FieldArgumentApplications(), first.renames)

	var childRoots []selSource
	for _, e := range class {
		sub, ok := e.field.FieldSubSelectionSet()
		if !ok {
			continue
		}
		childRoots = append(childRoots, selSource{
			set:           sub,
			enclosingType: m.fieldReturnType(e.enclosingType, e.field.FieldSelectionName()),
			cache:         e.cache,
			renames:       e.renames,
		})
	}

	var subPtr *MergedSelectionSet
	if len(childRoots) > 0 {
		merged, err := m.mergeSelections(childRoots)
		if err != nil {
			return nil, err
		}
		subPtr = merged
	}

	var aliasPtr *string
	if responseName != first.field.FieldSelectionName() {
		aliasPtr = &responseName
	}
	return &MergedField{alias: aliasPtr, name: first.field.FieldSelectionName(), arguments: args, subSelection: subPtr}, nil
}

func (m *merger) fieldReturnType(enclosingType, fieldName string) string {
	if fieldName == "__typename" {
		return "String"
	}
	if m.schema == nil || enclosingType == "" {
		return ""
	}
	t, ok := m.schema.GetTypeDefinition(enclosingType)
	if !ok {
		return ""
	}
	holder, ok := t.(ast.FieldsDefinitionHolder)
	if !ok {
		return ""
	}
	for _, f := range holder.FieldsDefinition() {
		if f.FieldName() == fieldName {
			return f.FieldType().NamedTypeName()
		}
	}
	return ""
}

func rootTypeName(schema ast.SchemaDefinition, opType ast.OperationType) string {
	if schema == nil {
		return ""
	}
	switch opType {
	case ast.OperationTypeMutation:
		name, _ := schema.MutationTypeName()
		return name
	case ast.OperationTypeSubscription:
		name, _ := schema.SubscriptionTypeName()
		return name
	default:
		return schema.QueryTypeName()
	}
}

// argumentsCompatible compares two field selections' arguments as
// multisets of (name, value), treating an argument's absence as equivalent
// to an explicit null when the other side supplies null (spec.md §4.4.1's
// equivalence rule, reused here for §4.6's identical requirement).
func argumentsCompatible(a, b ast.Field) bool {
	am := argMap(a.FieldArgumentApplications())
	bm := argMap(b.FieldArgumentApplications())
	names := make(map[string]bool, len(am)+len(bm))
	for n := range am {
		names[n] = true
	}
	for n := range bm {
		names[n] = true
	}
	for name := range names {
		av, aok := am[name]
		bv, bok := bm[name]
		switch {
		case aok && bok:
			if !ast.Equal(av, bv) {
				return false
			}
		case aok && !bok:
			if !av.IsNull() {
				return false
			}
		case !aok && bok:
			if !bv.IsNull() {
				return false
			}
		}
	}
	return true
}

func argMap(args []ast.ArgumentApplication) map[string]ast.Value {
	m := make(map[string]ast.Value, len(args))
	for _, a := range args {
		m[a.ArgumentName()] = a.ArgumentValue()
	}
	return m
}

// rewriteArguments rebuilds arg as the merged output's argument list, with
// any Variable value referring to a renamed variable rewritten to its
// final name.
func rewriteArguments(args []ast.ArgumentApplication, renames map[string]string) []ast.ArgumentApplication {
	if len(args) == 0 {
		return nil
	}
	out := make([]ast.ArgumentApplication, len(args))
	for i, a := range args {
		out[i] = ast.NewParsedArgumentApplication(ast.NewName(a.ArgumentName(), ast.Span{}), rewriteValue(a.ArgumentValue(), renames))
	}
	return out
}

func rewriteValue(v ast.Value, renames map[string]string) ast.Value {
	switch v.Kind() {
	case ast.ValueKindVariable:
		if renamed, ok := renames[v.VariableName()]; ok && renamed != v.VariableName() {
			return ast.VariableVal(renamed, v.Span())
		}
		return v
	case ast.ValueKindList:
		items := make([]ast.Value, len(v.List()))
		for i, item := range v.List() {
			items[i] = rewriteValue(item, renames)
		}
		return ast.ListVal(items, v.Span())
	case ast.ValueKindObject:
		fields := make([]ast.ObjectField, len(v.Object()))
		for i, f := range v.Object() {
			fields[i] = ast.ObjectField{Name: f.Name, Value: rewriteValue(f.Value, renames)}
		}
		return ast.ObjectVal(fields, v.Span())
	default:
		return v
	}
}
