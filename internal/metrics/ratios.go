package metrics

import (
	"math"
	"sort"
)

// Sharpe is the annualized excess return per unit of volatility.
func Sharpe(returns []float64, riskFree float64, factor int) float64 {
	sd := stdev(returns)
	if sd == 0 {
		return 0
	}
	return finite((mean(returns) - riskFree) / sd * math.Sqrt(float64(factor)))
}

// Sortino is Sharpe with the downside deviation below riskFree as the
// risk measure.
func Sortino(returns []float64, riskFree float64, factor int) float64 {
	if len(returns) == 0 {
		return 0
	}
	dd := DownsideDeviation(returns, riskFree)
	excess := mean(returns) - riskFree
	if dd == 0 {
		return ratio(excess, 0)
	}
	return finite(excess / dd * math.Sqrt(float64(factor)))
}

// Omega is the probability weighted ratio of gains over losses relative to
// threshold.
func Omega(returns []float64, threshold float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	var gains, losses float64
	for _, r := range returns {
		if r > threshold {
			gains += r - threshold
		} else {
			losses += threshold - r
		}
	}
	return ratio(gains, losses)
}

// Volatility is the annualized standard deviation of the close-to-close log
// returns of prices. Non-positive prices are skipped.
func Volatility(prices []float64, factor int) float64 {
	if len(prices) < 2 {
		return 0
	}
	logReturns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] <= 0 || prices[i] <= 0 {
			continue
		}
		logReturns = append(logReturns, math.Log(prices[i]/prices[i-1]))
	}
	if len(logReturns) == 0 {
		return 0
	}
	return finite(stdev(logReturns) * math.Sqrt(float64(factor)))
}

// Treynor is the excess return per unit of systematic risk.
func Treynor(returns []float64, riskFree, beta float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	return ratio(mean(returns)-riskFree, beta)
}

// Skewness is the third standardized moment. Fewer than four points or a
// flat series yield 0.
func Skewness(returns []float64) float64 {
	if len(returns) < 4 {
		return 0
	}
	v := variance(returns)
	if v <= 0 {
		return 0
	}
	return finite(centralMoment(returns, 3) / math.Pow(v, 1.5))
}

// Kurtosis is the excess kurtosis: fourth standardized moment minus 3.
func Kurtosis(returns []float64) float64 {
	if len(returns) < 4 {
		return 0
	}
	v := variance(returns)
	if v <= 0 {
		return 0
	}
	return finite(centralMoment(returns, 4)/(v*v) - 3)
}

// TailRisk holds the lower-tail loss quantiles of a return series, as
// positive numbers for losses.
type TailRisk struct {
	VaR95 float64
	VaR99 float64
	CVaR  float64
}

// ValueAtRisk returns the historical VaR at 95% and 99% and the CVaR as the
// mean of every return at or below the 95% cutoff.
func ValueAtRisk(returns []float64) TailRisk {
	n := len(returns)
	if n == 0 {
		return TailRisk{}
	}
	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)

	idx95 := clampIndex(int(math.Ceil(float64(n)*0.05))-1, n)
	idx99 := clampIndex(int(math.Ceil(float64(n)*0.01))-1, n)

	var tail float64
	for i := 0; i <= idx95; i++ {
		tail += sorted[i]
	}
	return TailRisk{
		VaR95: finite(-sorted[idx95]),
		VaR99: finite(-sorted[idx99]),
		CVaR:  finite(-tail / float64(idx95+1)),
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// DownsideDeviation is sqrt(mean(min(r-target, 0)^2)) over every return.
func DownsideDeviation(returns []float64, target float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	var sum float64
	for _, r := range returns {
		if d := r - target; d < 0 {
			sum += d * d
		}
	}
	return finite(math.Sqrt(sum / float64(len(returns))))
}

// ModifiedSharpe adjusts sharpe for skew and kurtosis. kurtosis is the
// excess kurtosis from Kurtosis; the (kurtosis-3) term is kept literally.
func ModifiedSharpe(sharpe, skew, kurtosis float64) float64 {
	modifier := 1 + (skew/6)*sharpe - ((kurtosis-3)/24)*sharpe*sharpe
	return finite(sharpe * modifier)
}

// RiskAdjustedReturn discounts totalReturn by a blend of risk measures.
func RiskAdjustedReturn(totalReturn, volatility, maxDrawdown, downsideDeviation float64) float64 {
	den := 1 + 0.4*math.Abs(volatility) + 0.4*math.Abs(maxDrawdown) + 0.2*math.Abs(downsideDeviation)
	if den == 0 {
		return totalReturn
	}
	return finite(totalReturn / den)
}

// Calmar is the annualized return over the absolute max drawdown.
func Calmar(annualizedReturn, maxDrawdown float64) float64 {
	return ratio(annualizedReturn, math.Abs(maxDrawdown))
}
