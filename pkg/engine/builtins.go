package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/medial/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites shape-script source before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal), so
//     keywords never collide with user-defined variables.
//
//  2. Kebab-case to underscore: my-part -> my_part. zygomys reads a hyphen
//     as the subtraction operator.
//
//  3. Line comments: ; and ;; become //, the zygomys comment syntax.
//
// All rewrites respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNodeRef wraps a scene.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   scene.NodeID
	kind scene.NodeKind
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(%s %q)", n.kind, n.name)
	}
	return fmt.Sprintf("(%s %s)", n.kind, n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a scene.Vec3.
type sexpVec3 struct {
	vec scene.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// number returns the keyword argument name if present, otherwise the
// positional argument at index pos.
func (a kwArgs) number(name string, pos int) (float64, error) {
	if v, ok := a.kw[name]; ok {
		return toFloat64(v)
	}
	if pos < len(a.positional) {
		return toFloat64(a.positional[pos])
	}
	return 0, errors.Errorf("missing %s", name)
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, errors.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", errors.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRef extracts a NodeID from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (scene.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return scene.ZeroID, errors.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (scene.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return scene.Vec3{}, errors.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, errors.Errorf("expected list or array, got %T", s)
}

// toSolids flattens args into node references. A list or array argument
// contributes each of its elements.
func toSolids(args []zygo.Sexp) ([]scene.NodeID, error) {
	var ids []scene.NodeID
	for i, a := range args {
		if _, ok := a.(*sexpNodeRef); !ok {
			if items, err := sexpListToSlice(a); err == nil {
				nested, err := toSolids(items)
				if err != nil {
					return nil, errors.Wrapf(err, "argument %d", i+1)
				}
				ids = append(ids, nested...)
				continue
			}
		}
		id, err := toNodeRef(a)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Graph construction
// ---------------------------------------------------------------------------

// builder owns the graph being populated by one evaluation. Node IDs are
// derived from the builtin name and a per-evaluation sequence number, so
// the same source always yields the same IDs.
type builder struct {
	g   *scene.Graph
	seq int
}

func newBuilder() *builder {
	return &builder{g: scene.New()}
}

func (b *builder) add(op string, kind scene.NodeKind, data scene.NodeData, children ...scene.NodeID) *sexpNodeRef {
	b.seq++
	id := scene.NewNodeID(fmt.Sprintf("%s/%d", op, b.seq))
	b.g.AddNode(&scene.Node{
		ID:       id,
		Kind:     kind,
		Children: children,
		Data:     data,
	})
	return &sexpNodeRef{id: id, kind: kind}
}

// shape registers child as a named root.
func (b *builder) shape(name string, child scene.NodeID) (*sexpNodeRef, error) {
	if b.g.Lookup(name) != nil {
		return nil, errors.Errorf("shape %q already defined", name)
	}
	id := scene.NewNodeID("shape/" + name)
	b.g.AddNode(&scene.Node{
		ID:       id,
		Kind:     scene.NodeShape,
		Name:     name,
		Children: []scene.NodeID{child},
		Data:     scene.ShapeData{},
	})
	b.g.AddRoot(id)
	return &sexpNodeRef{id: id, kind: scene.NodeShape, name: name}, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinFunc is the signature zygomys expects from AddFunction.
type builtinFunc = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs the shape-script builtins into a zygomys
// environment. The builtins populate b's graph during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (box 10 20 30) or (box :size (vec3 10 20 30))
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var size scene.Vec3
		if v, ok := pa.kw["size"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, "box: size")
			}
			size = vec
		} else {
			if len(pa.positional) != 3 {
				return zygo.SexpNull, errors.Errorf("box requires 3 dimensions or :size, got %d arguments", len(pa.positional))
			}
			var err error
			if size.X, err = toFloat64(pa.positional[0]); err != nil {
				return zygo.SexpNull, errors.Wrap(err, "box: x")
			}
			if size.Y, err = toFloat64(pa.positional[1]); err != nil {
				return zygo.SexpNull, errors.Wrap(err, "box: y")
			}
			if size.Z, err = toFloat64(pa.positional[2]); err != nil {
				return zygo.SexpNull, errors.Wrap(err, "box: z")
			}
		}
		return b.add("box", scene.NodePrimitive, scene.BoxData{Size: size}), nil
	})

	// -----------------------------------------------------------------------
	// (sphere 5) or (sphere :radius 5)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r, err := parseArgs(args).number("radius", 0)
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "sphere: radius")
		}
		return b.add("sphere", scene.NodePrimitive, scene.SphereData{Radius: r}), nil
	})

	// -----------------------------------------------------------------------
	// (cylinder 20 5) or (cylinder :height 20 :radius 5)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		h, err := pa.number("height", 0)
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "cylinder: height")
		}
		r, err := pa.number("radius", 1)
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "cylinder: radius")
		}
		return b.add("cylinder", scene.NodePrimitive, scene.CylinderData{Height: h, Radius: r}), nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, errors.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "vec3: x")
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "vec3: y")
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "vec3: z")
		}

		return &sexpVec3{vec: scene.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (translate solid :by (vec3 0 0 19))
	// (rotate solid :by (vec3 0 0 90))
	// -----------------------------------------------------------------------
	transform := func(op string) builtinFunc {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) < 1 {
				return zygo.SexpNull, errors.Errorf("%s requires a solid as first argument", op)
			}
			child, err := toNodeRef(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, errors.Wrapf(err, "%s: solid", op)
			}

			by, ok := pa.kw["by"]
			if !ok && len(pa.positional) > 1 {
				by, ok = pa.positional[1], true
			}
			if !ok {
				return zygo.SexpNull, errors.Errorf("%s requires :by (vec3 ...)", op)
			}
			vec, err := toVec3(by)
			if err != nil {
				return zygo.SexpNull, errors.Wrapf(err, "%s: by", op)
			}

			td := scene.TransformData{}
			if op == "rotate" {
				td.Rotation = &vec
			} else {
				td.Translation = &vec
			}
			return b.add(op, scene.NodeTransform, td, child), nil
		}
	}
	env.AddFunction("translate", transform("translate"))
	env.AddFunction("rotate", transform("rotate"))

	// -----------------------------------------------------------------------
	// (union a b ...), (difference a b ...), (intersection a b ...)
	// -----------------------------------------------------------------------
	boolean := func(op scene.BooleanOp) builtinFunc {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			children, err := toSolids(args)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, op.String())
			}
			if len(children) < 2 {
				return zygo.SexpNull, errors.Errorf("%s requires at least 2 solids, got %d", op, len(children))
			}
			return b.add(op.String(), scene.NodeBoolean, scene.BooleanData{Op: op}, children...), nil
		}
	}
	env.AddFunction("union", boolean(scene.OpUnion))
	env.AddFunction("difference", boolean(scene.OpDifference))
	env.AddFunction("intersection", boolean(scene.OpIntersection))

	// -----------------------------------------------------------------------
	// (shape "name" solid)
	// -----------------------------------------------------------------------
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, errors.New("shape requires a name and a solid")
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "shape: name")
		}
		child, err := toNodeRef(args[1])
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "shape: solid")
		}
		return b.shape(shapeName, child)
	})
}
