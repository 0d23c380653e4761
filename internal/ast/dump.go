package ast

import (
	"fmt"
	"strings"
)

// Dump renders n as an indented tree, for the CLI's --dump-ast flag and for
// debugging; not used by the evaluator itself.
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dump(sb *strings.Builder, n Node, depth int) {
	if n == nil {
		indent(sb, depth)
		sb.WriteString("<nil>\n")
		return
	}
	switch v := n.(type) {
	case *BlockStat:
		indent(sb, depth)
		fmt.Fprintf(sb, "Block(%d)\n", len(v.Stats))
		for _, s := range v.Stats {
			dump(sb, s, depth+1)
		}
	case *AssignStat:
		indent(sb, depth)
		sb.WriteString("Assign\n")
		dump(sb, v.LHS, depth+1)
		dump(sb, v.RHS, depth+1)
	case *CompoundAssignStat:
		indent(sb, depth)
		fmt.Fprintf(sb, "CompoundAssign(%s)\n", v.Op)
		dump(sb, v.LHS, depth+1)
		dump(sb, v.RHS, depth+1)
	case *IfStat:
		indent(sb, depth)
		sb.WriteString("If\n")
		dump(sb, v.Cond, depth+1)
		dump(sb, v.Then, depth+1)
		if v.Else != nil {
			dump(sb, v.Else, depth+1)
		}
	case *WhileStat:
		indent(sb, depth)
		sb.WriteString("While\n")
		dump(sb, v.Cond, depth+1)
		dump(sb, v.Body, depth+1)
	case *ForStat:
		indent(sb, depth)
		fmt.Fprintf(sb, "For(%s)\n", v.Ident)
		dump(sb, v.Iter, depth+1)
		dump(sb, v.Body, depth+1)
	case *FuncCallStat:
		indent(sb, depth)
		sb.WriteString("FuncCallStat\n")
		dump(sb, v.Call, depth+1)
	case *ReturnStat:
		indent(sb, depth)
		sb.WriteString("Return\n")
		if v.Value != nil {
			dump(sb, v.Value, depth+1)
		}
	case *IntExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "Int(%d)\n", v.Value)
	case *FloatExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "Float(%g)\n", v.Value)
	case *StrExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "Str(%q)\n", v.Value)
	case *NoneExp:
		indent(sb, depth)
		sb.WriteString("None\n")
	case *IdExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "Id(%s)\n", v.Name)
	case *BinOpExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "BinOp(%s)\n", v.Op)
		dump(sb, v.Left, depth+1)
		dump(sb, v.Right, depth+1)
	case *UnOpExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "UnOp(%s)\n", v.Op)
		dump(sb, v.Operand, depth+1)
	case *MapDefExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "MapDef(%d)\n", len(v.Entries))
		for _, e := range v.Entries {
			indent(sb, depth+1)
			fmt.Fprintf(sb, "%s:\n", e.Key)
			dump(sb, e.Value, depth+2)
		}
	case *ListDefExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "ListDef(%d)\n", len(v.Elements))
		for _, e := range v.Elements {
			dump(sb, e, depth+1)
		}
	case *RangeDefExp:
		indent(sb, depth)
		sb.WriteString("RangeDef\n")
		dump(sb, v.Beg, depth+1)
		dump(sb, v.End, depth+1)
		if v.Step != nil {
			dump(sb, v.Step, depth+1)
		}
	case *FuncDefExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "FuncDef(%s)\n", strings.Join(v.Params, ","))
		dump(sb, v.Body, depth+1)
	case *FuncCallExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "FuncCall(%s)\n", v.Name)
		if v.Ctx != nil {
			dump(sb, v.Ctx, depth+1)
		}
		for _, a := range v.Args {
			dump(sb, a, depth+1)
		}
	case *IndexExp:
		indent(sb, depth)
		sb.WriteString("Index\n")
		dump(sb, v.Target, depth+1)
		dump(sb, v.Index, depth+1)
	case *MemberExp:
		indent(sb, depth)
		fmt.Fprintf(sb, "Member(%s)\n", v.Member)
		dump(sb, v.Target, depth+1)
	case *TernaryExp:
		indent(sb, depth)
		sb.WriteString("Ternary\n")
		dump(sb, v.Cond, depth+1)
		dump(sb, v.Then, depth+1)
		dump(sb, v.Else, depth+1)
	default:
		indent(sb, depth)
		fmt.Fprintf(sb, "%T\n", n)
	}
}
