package engine

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
)

type EvaluationConfig struct {
	initialCapital decimal.Decimal
	feeRatio       decimal.Decimal
	riskFreeRate   decimal.Decimal
	returnKind     ReturnKind
}

func NewEvaluationConfig(initialCapital, feeRatio, riskFreeRate decimal.Decimal, returnKind ReturnKind) *EvaluationConfig {
	return &EvaluationConfig{
		initialCapital: initialCapital,
		feeRatio:       feeRatio,
		riskFreeRate:   riskFreeRate,
		returnKind:     returnKind,
	}
}

func (c *EvaluationConfig) InitialCapital() decimal.Decimal {
	return c.initialCapital
}

func (c *EvaluationConfig) validate() error {
	if !c.initialCapital.IsPositive() {
		return fmt.Errorf("%w: initial capital must be positive, got %s", ErrInvalidInput, c.initialCapital)
	}
	if c.feeRatio.IsNegative() {
		return fmt.Errorf("%w: fee ratio must not be negative, got %s", ErrInvalidInput, c.feeRatio)
	}
	return nil
}

type ReportingConfig struct {
	printReport   bool
	tradesCSVPath string
	out           io.Writer
}

// NewReportingConfig configures what Run does with a finished report. A nil
// out prints to stdout.
func NewReportingConfig(printReport bool, tradesCSVPath string, out io.Writer) *ReportingConfig {
	if out == nil {
		out = os.Stdout
	}
	return &ReportingConfig{
		printReport:   printReport,
		tradesCSVPath: tradesCSVPath,
		out:           out,
	}
}
