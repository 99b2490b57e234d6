package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	// ExportOrders renders all orders placed in [from, to) as an XLSX
	// workbook, one row per order.
	ExportOrders(from, to time.Time) (*bytes.Buffer, error)
}

type reportService struct {
	orderRepo repository.OrderRepository
}

func NewReportService(orderRepo repository.OrderRepository) ReportService {
	return &reportService{orderRepo: orderRepo}
}

var exportHeader = []string{
	"Order ID", "Order Date", "Customer", "Email", "Items",
	"Subtotal", "Shipping", "Total", "Payment Method", "Payment Status", "Status",
}

func (s *reportService) ExportOrders(from, to time.Time) (*bytes.Buffer, error) {
	orders, err := s.orderRepo.FindBetween(from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, order := range orders {
		itemCount := 0
		for _, item := range order.OrderItems {
			itemCount += item.Quantity
		}
		row := []interface{}{
			order.ID,
			order.OrderDate.Format("2006-01-02 15:04"),
			order.User.Name,
			order.User.Email,
			itemCount,
			order.Subtotal,
			order.ShippingCost,
			order.TotalAmount,
			string(order.PaymentMethod),
			string(order.PaymentStatus),
			string(order.Status),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to render orders workbook", err)
		return nil, err
	}

	logger.Info("Orders exported", map[string]interface{}{
		"count": len(orders),
		"from":  from.Format("2006-01-02"),
		"to":    to.Format("2006-01-02"),
	})
	return buf, nil
}

// ExportFilename names the workbook after the covered period.
func ExportFilename(from, to time.Time) string {
	return fmt.Sprintf("orders_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
}
