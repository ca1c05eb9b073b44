package jce

import "fmt"

// TraceNode is one (tag, type, value-if-scalar) entry in a decode_trace
// diagnostic tree. Name/TypeName are populated when a schema is supplied
// and the tag is recognised at that nesting level; in addition, the key
// and value nodes under a Map are named "key" and "value". Err is set, and recursion into that node stops, when the node itself
// could not be decoded - siblings already collected remain in the tree.
type TraceNode struct {
	Tag      int
	WireType WireType
	Name     string
	TypeName string
	Value    TarsValue // populated for scalar leaves only
	Children []*TraceNode
	Path     string
	Err      error
}

// DecodeTrace walks data like the schema and generic decoders but records every field into a tree
// instead of building a Record or TarsValue, without applying constraints
// and without failing on unknown tags. schema is optional: when supplied,
// it annotates recognised tags with their declared name/kind and lets the
// walk descend into nested Struct-kind fields with the matching child
// schema. The walk stops at the first decode error at any level, and the
// bytes after it are not visited: the error is recorded on the node where
// it occurred (on the root for a malformed top-level head), and the partial
// tree built so far is returned alongside the error.
func DecodeTrace(data []byte, schema *CompiledSchema, resolver Resolver, limits *Limits) (*TraceNode, error) {
	r := NewReader(data, limits, BigEndian)
	root := &TraceNode{Tag: noTag, Path: ""}

	for !r.AtEOF() {
		tag, typ, err := r.ReadHead("")
		if err != nil {
			root.Err = err
			return root, err
		}
		child, err := traceField(r, "", tag, typ, schema, resolver)
		root.Children = append(root.Children, child)
		if err != nil {
			return root, err
		}
	}
	return root, nil
}

// traceField builds the node for an already-consumed (tag, type) head,
// recursing into containers and structs.
func traceField(r *Reader, path string, tag int, typ WireType, schema *CompiledSchema, resolver Resolver) (*TraceNode, error) {
	node := &TraceNode{Tag: tag, WireType: typ, Path: fmt.Sprintf("%s#%d", pathOrRoot(path), tag)}
	logProbeField(node.Path, typ)

	var fieldSchema *CompiledSchema // child schema to use if this node is itself a Struct
	if schema != nil {
		if slot, ok := schema.SlotForTag(tag); ok {
			f := schema.Fields[slot]
			node.Name = f.Name
			node.TypeName = kindName(f.Kind)
			node.Path = childPath(path, f.Name)
			if f.Kind.Tag == KStruct && resolver != nil {
				fieldSchema, _ = resolver.Resolve(f.Kind.SchemaID)
			}
		}
	}

	switch typ {
	case TypeZeroTag:
		node.Value = int64(0)
		return node, nil

	case TypeInt1, TypeInt2, TypeInt4, TypeInt8:
		v, err := r.ReadInt(node.Path, typ)
		node.Value, node.Err = v, err
		return node, err

	case TypeFloat:
		v, err := r.ReadFloat(node.Path, typ)
		node.Value, node.Err = float32(v), err
		return node, err

	case TypeDouble:
		v, err := r.ReadFloat(node.Path, typ)
		node.Value, node.Err = v, err
		return node, err

	case TypeString1, TypeString4:
		v, err := r.ReadString(node.Path, typ)
		node.Value, node.Err = v, err
		return node, err

	case TypeSimpleList:
		v, err := r.ReadSimpleList(node.Path)
		node.Value, node.Err = v, err
		return node, err

	case TypeList:
		n, err := r.ReadListHeader(node.Path)
		if err != nil {
			node.Err = err
			return node, err
		}
		err = withDepth(r, node.Path, func() error {
			for i := 0; i < n; i++ {
				et, eTyp, err := r.ReadHead(node.Path)
				if err != nil {
					node.Err = err
					return err
				}
				childNode, err := traceField(r, node.Path, et, eTyp, nil, nil)
				node.Children = append(node.Children, childNode)
				if err != nil {
					return err
				}
			}
			return nil
		})
		return node, err

	case TypeMap:
		n, err := r.ReadMapHeader(node.Path)
		if err != nil {
			node.Err = err
			return node, err
		}
		err = withDepth(r, node.Path, func() error {
			for i := 0; i < n; i++ {
				kt, kTyp, err := r.ReadHead(node.Path)
				if err != nil {
					node.Err = err
					return err
				}
				keyNode, err := traceField(r, node.Path, kt, kTyp, nil, nil)
				keyNode.Name = "key"
				node.Children = append(node.Children, keyNode)
				if err != nil {
					return err
				}
				vt, vTyp, err := r.ReadHead(node.Path)
				if err != nil {
					node.Err = err
					return err
				}
				valNode, err := traceField(r, node.Path, vt, vTyp, nil, nil)
				valNode.Name = "value"
				node.Children = append(node.Children, valNode)
				if err != nil {
					return err
				}
			}
			return nil
		})
		return node, err

	case TypeStructBegin:
		err := r.ReadStructBody(node.Path, func(tag int, ft WireType) error {
			childNode, err := traceField(r, node.Path, tag, ft, fieldSchema, resolver)
			node.Children = append(node.Children, childNode)
			return err
		})
		if err != nil {
			node.Err = err
		}
		return node, err

	default:
		node.Err = newErr(KindBadType, node.Path, noTag, byte(typ), "unsupported wire type in trace")
		return node, node.Err
	}
}

func kindName(k Kind) string {
	switch k.Tag {
	case KBool:
		return "Bool"
	case KInt:
		return "Int"
	case KFloat:
		return "Float"
	case KDouble:
		return "Double"
	case KStr:
		return "Str"
	case KBytes:
		return "Bytes"
	case KList:
		return "List"
	case KSet:
		return "Set"
	case KTuple:
		return "Tuple"
	case KMap:
		return "Map"
	case KStruct:
		return "Struct"
	case KOptional:
		return "Optional"
	case KEnum:
		return "Enum"
	case KUnion:
		return "Union"
	case KAny:
		return "Any"
	default:
		return "Unknown"
	}
}
