// Package formula evaluates the per-phase dosage formulas from the catalog.
//
// A formula is a short arithmetic expression over +, -, *, /, parentheses and
// one free variable bound to the reservoir volume, e.g. "(v / 2) * 5". The
// expression is parsed with go/parser and walked against a node whitelist:
// anything outside the arithmetic grammar (calls, selectors, indexing,
// unknown identifiers) is rejected, so a formula can never execute code even
// if catalog content is compromised.
package formula

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"agrocalc-be/internal/pkg/apperr"
)

// VolumeVariable is the one identifier a formula may reference.
const VolumeVariable = "v"

// Evaluate computes the dosage quantity for the given reservoir volume.
// Every rejection is an apperr.KindEvaluation error.
func Evaluate(expr string, volume float64) (float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, apperr.Evaluation("empty formula", nil)
	}

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		return 0, apperr.Evaluation("malformed formula "+strconv.Quote(expr), err)
	}

	return evalNode(parsed, volume)
}

func evalNode(node ast.Expr, volume float64) (float64, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return 0, apperr.Evaluation("non-numeric literal "+n.Value, nil)
		}
		value, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return 0, apperr.Evaluation("bad numeric literal "+n.Value, err)
		}
		return value, nil

	case *ast.Ident:
		if n.Name != VolumeVariable {
			return 0, apperr.Evaluation("unknown name "+strconv.Quote(n.Name), nil)
		}
		return volume, nil

	case *ast.ParenExpr:
		return evalNode(n.X, volume)

	case *ast.UnaryExpr:
		if n.Op != token.SUB && n.Op != token.ADD {
			return 0, apperr.Evaluation("operator "+n.Op.String()+" not allowed", nil)
		}
		value, err := evalNode(n.X, volume)
		if err != nil {
			return 0, err
		}
		if n.Op == token.SUB {
			return -value, nil
		}
		return value, nil

	case *ast.BinaryExpr:
		left, err := evalNode(n.X, volume)
		if err != nil {
			return 0, err
		}
		right, err := evalNode(n.Y, volume)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.ADD:
			return left + right, nil
		case token.SUB:
			return left - right, nil
		case token.MUL:
			return left * right, nil
		case token.QUO:
			if right == 0 {
				return 0, apperr.Evaluation("division by zero", nil)
			}
			return left / right, nil
		default:
			return 0, apperr.Evaluation("operator "+n.Op.String()+" not allowed", nil)
		}

	default:
		return 0, apperr.Evaluation("expression is not plain arithmetic", nil)
	}
}
