package domain

import (
	"fmt"
	"strings"
)

type Method string

const (
	MethodCash     Method = "cash"
	MethodCredit   Method = "credit_card"
	MethodDebit    Method = "debit_card"
	MethodWallet   Method = "digital_wallet"
	MethodTransfer Method = "bank_transfer"
	MethodCheck    Method = "check"
)

// ParseMethod normalizes a wire value; cash is the default for empty input.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return MethodCash, nil
	case MethodCash:
		return MethodCash, nil
	case MethodCredit:
		return MethodCredit, nil
	case MethodDebit:
		return MethodDebit, nil
	case MethodWallet:
		return MethodWallet, nil
	case MethodTransfer:
		return MethodTransfer, nil
	case MethodCheck:
		return MethodCheck, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}

func (m Method) IsCash() bool {
	return m == MethodCash
}

// ReferenceLabel names the operator-entered code captured for non-cash
// methods. The code is metadata only, never verified.
func (m Method) ReferenceLabel() string {
	switch m {
	case MethodCredit, MethodDebit:
		return "authorization number"
	case MethodWallet:
		return "transaction id"
	case MethodTransfer:
		return "transfer reference"
	case MethodCheck:
		return "check number"
	default:
		return ""
	}
}

// Attempt is the validated outcome of one payment workflow run.
type Attempt struct {
	Method        Method
	TenderedCents int64
	ChangeCents   int64
	Reference     string
}
