package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"wearluxe/internal/models"
)

/* =======================
   REPORT TYPES
======================= */

type StatusBreakdown struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type MonthRevenue struct {
	Month        string `json:"month"`
	RevenueMinor int64  `json:"revenueMinor"`
}

type TopProduct struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	QuantitySold int    `json:"quantitySold"`
}

type AnalyticsReport struct {
	TotalOrders            int                        `json:"totalOrders"`
	StatusBreakdown        map[string]StatusBreakdown `json:"statusBreakdown"`
	TotalRevenueMinor      int64                      `json:"totalRevenueMinor"`
	AverageOrderValueMinor int64                      `json:"averageOrderValueMinor"`
	MonthlyRevenue         []MonthRevenue             `json:"monthlyRevenue"`
	TopProducts            []TopProduct               `json:"topProducts"`
}

const (
	monthWindow    = 6
	topProductSize = 5
)

/* =======================
   AGGREGATION
======================= */

// BuildAnalyticsReport is a pure function of the fetched order set; it is
// recomputed on every request. Revenue figures only count orders currently
// in the paid status; the product ranking counts every order's items.
func BuildAnalyticsReport(orders []models.Order, now time.Time) AnalyticsReport {
	report := AnalyticsReport{
		TotalOrders:     len(orders),
		StatusBreakdown: map[string]StatusBreakdown{},
		MonthlyRevenue:  monthWindowLabels(now),
		TopProducts:     []TopProduct{},
	}

	revenueByMonth := map[string]int64{}
	quantityByProduct := map[string]*TopProduct{}
	paidCount := 0

	for _, order := range orders {
		entry := report.StatusBreakdown[string(order.Status)]
		entry.Count++
		report.StatusBreakdown[string(order.Status)] = entry

		if order.Status == models.OrderStatusPaid {
			paidCount++
			report.TotalRevenueMinor += order.TotalMinor
			revenueByMonth[monthLabel(order.CreatedAt)] += order.TotalMinor
		}

		for _, item := range order.Items {
			key := item.ProductID.Hex()
			top, ok := quantityByProduct[key]
			if !ok {
				top = &TopProduct{ProductID: key, Name: item.Name}
				quantityByProduct[key] = top
			}
			top.QuantitySold += item.Quantity
		}
	}

	if len(orders) > 0 {
		for status, entry := range report.StatusBreakdown {
			entry.Percentage = float64(entry.Count) * 100 / float64(len(orders))
			report.StatusBreakdown[status] = entry
		}
	}

	if paidCount > 0 {
		report.AverageOrderValueMinor = report.TotalRevenueMinor / int64(paidCount)
	}

	for i := range report.MonthlyRevenue {
		report.MonthlyRevenue[i].RevenueMinor = revenueByMonth[report.MonthlyRevenue[i].Month]
	}

	tops := make([]TopProduct, 0, len(quantityByProduct))
	for _, top := range quantityByProduct {
		tops = append(tops, *top)
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].QuantitySold != tops[j].QuantitySold {
			return tops[i].QuantitySold > tops[j].QuantitySold
		}
		return tops[i].Name < tops[j].Name
	})
	if len(tops) > topProductSize {
		tops = tops[:topProductSize]
	}
	report.TopProducts = tops

	return report
}

func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// monthWindowLabels returns the trailing window oldest first, current month
// included.
func monthWindowLabels(now time.Time) []MonthRevenue {
	months := make([]MonthRevenue, 0, monthWindow)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := monthWindow - 1; i >= 0; i-- {
		months = append(months, MonthRevenue{Month: monthLabel(first.AddDate(0, -i, 0))})
	}
	return months
}

/* =======================
   HANDLER
======================= */

func GetAnalytics(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/analytics"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, BuildAnalyticsReport(orders, time.Now()))
	}
}
