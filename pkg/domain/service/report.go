package service

import (
	"github.com/shopspring/decimal"
	"pos/pkg/domain/model"
)

func (s *storeService) TodaySummary(lowStockThreshold int) model.DailySummary {
	start, _ := dayBounds(s.clock.Now())
	today := s.TodayTransactions()

	summary := model.DailySummary{
		Date:               start,
		ProductCount:       len(s.products),
		LowStockCount:      len(s.LowStockProducts(lowStockThreshold)),
		TransactionCount:   len(today),
		Revenue:            decimal.Zero,
		AverageTransaction: decimal.Zero,
	}
	for _, t := range today {
		summary.ItemsSold += t.ItemCount()
		summary.Revenue = summary.Revenue.Add(t.Total)
	}
	if summary.TransactionCount > 0 {
		summary.AverageTransaction = summary.Revenue.Div(decimal.NewFromInt(int64(summary.TransactionCount)))
	}
	return summary
}
