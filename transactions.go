package mwr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/mwr/date"
)

// Kind identifies the type of a ledger event.
type Kind int

// Transaction kinds. The set is closed: every switch over a Kind must handle
// all of them, see [Kinds].
const (
	Buy Kind = iota
	Sell
	Deposit
	Withdrawal
	Dividend
)

// Kinds returns all transaction kinds in declaration order.
func Kinds() []Kind { return []Kind{Buy, Sell, Deposit, Withdrawal, Dividend} }

func (k Kind) String() string {
	switch k {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	case Deposit:
		return "Deposit"
	case Withdrawal:
		return "Withdrawal"
	case Dividend:
		return "Dividend"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsTrade reports whether the kind moves shares rather than cash only.
func (k Kind) IsTrade() bool { return k == Buy || k == Sell }

// ParseKind parses a kind name, case insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	case "deposit":
		return Deposit, nil
	case "withdrawal", "withdraw":
		return Withdrawal, nil
	case "dividend":
		return Dividend, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", s)
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Transaction is an immutable record of one ledger event.
//
// Trade events (Buy, Sell) use Shares and Price, cash events (Deposit,
// Withdrawal, Dividend) use Amount.
type Transaction struct {
	Date         date.Date
	Kind         Kind
	Symbol       string   // Symbol is the instrument ticker, empty for pure cash events.
	Shares       Quantity // Shares is the number of shares traded.
	Price        Money    // Price is the price per share of the trade.
	Amount       Money    // Amount is the magnitude of a cash event.
	CurrentPrice Money    // CurrentPrice is the latest known price of Symbol, used by valuation only.
	Memo         string
}

// NewBuy creates a Buy of shares at price per share.
func NewBuy(day date.Date, symbol string, shares Quantity, price Money) Transaction {
	return Transaction{Date: day, Kind: Buy, Symbol: symbol, Shares: shares, Price: price}
}

// NewSell creates a Sell of shares at price per share.
func NewSell(day date.Date, symbol string, shares Quantity, price Money) Transaction {
	return Transaction{Date: day, Kind: Sell, Symbol: symbol, Shares: shares, Price: price}
}

// NewDeposit creates a Deposit of amount into the portfolio.
func NewDeposit(day date.Date, amount Money) Transaction {
	return Transaction{Date: day, Kind: Deposit, Amount: amount}
}

// NewWithdrawal creates a Withdrawal of amount out of the portfolio.
func NewWithdrawal(day date.Date, amount Money) Transaction {
	return Transaction{Date: day, Kind: Withdrawal, Amount: amount}
}

// NewDividend creates a Dividend paid by symbol.
func NewDividend(day date.Date, symbol string, amount Money) Transaction {
	return Transaction{Date: day, Kind: Dividend, Symbol: symbol, Amount: amount}
}

// WithCurrentPrice returns a copy of t carrying the latest known price of its symbol.
func (t Transaction) WithCurrentPrice(price Money) Transaction {
	t.CurrentPrice = price
	return t
}

// TotalAmount is the value of the trade, Shares × Price.
func (t Transaction) TotalAmount() Money { return t.Price.Mul(t.Shares) }

// CurrentValue is the value of the traded shares at the current price.
func (t Transaction) CurrentValue() Money { return t.CurrentPrice.Mul(t.Shares) }

// CashFlow returns the signed cash movement of the transaction from the
// investor's perspective: money put into the portfolio is negative, money
// taken out of it is positive.
func (t Transaction) CashFlow() Money {
	switch t.Kind {
	case Deposit:
		return t.Amount.Neg()
	case Withdrawal:
		return t.Amount
	case Buy:
		return t.TotalAmount().Neg()
	case Sell:
		return t.TotalAmount()
	case Dividend:
		return t.Amount
	default:
		panic(fmt.Sprintf("no cash flow rule for transaction kind %v", t.Kind))
	}
}

// Currency returns the currency of the transaction's monetary fields.
func (t Transaction) Currency() string {
	for _, m := range []Money{t.Amount, t.Price, t.CurrentPrice} {
		if c := m.Currency(); c != "" {
			return c
		}
	}
	return ""
}

// Validate checks the transaction is well formed for ingestion. The engine
// itself is lenient and only drops zero cash flows, but a ledger read from
// a file must not mix trade and cash semantics.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return errors.New("date is missing")
	}
	switch t.Kind {
	case Buy, Sell:
		if t.Symbol == "" {
			return fmt.Errorf("%v transaction has no symbol", t.Kind)
		}
		if t.Shares.IsNegative() {
			return fmt.Errorf("%v transaction shares must be positive, got %s", t.Kind, t.Shares)
		}
		if t.Price.IsNegative() {
			return fmt.Errorf("%v transaction price must be positive, got %s", t.Kind, t.Price)
		}
		if !t.Amount.IsZero() {
			return fmt.Errorf("%v transaction cannot have a cash amount, got %s", t.Kind, t.Amount)
		}
	case Deposit, Withdrawal:
		if !t.Shares.IsZero() || !t.Price.IsZero() {
			return fmt.Errorf("%v transaction cannot have shares or price", t.Kind)
		}
		fallthrough
	case Dividend:
		if t.Amount.IsNegative() {
			return fmt.Errorf("%v transaction amount must be positive, got %s", t.Kind, t.Amount)
		}
	default:
		return fmt.Errorf("unknown transaction kind %v", t.Kind)
	}
	return nil
}

// Equal reports whether t and o record the same event.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date == o.Date && t.Kind == o.Kind && t.Symbol == o.Symbol && t.Memo == o.Memo &&
		t.Shares.Equal(o.Shares) && t.Price.Equal(o.Price) && t.Amount.Equal(o.Amount) &&
		t.CurrentPrice.Equal(o.CurrentPrice)
}
