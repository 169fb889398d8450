package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

// GenerateManifestPDF renders the trip sheet a shipper carries on a delivery
// round: one section per member order with the destination store and the
// product lines. Returns the path of the written file.
func GenerateManifestPDF(kitchenName, storageDir string, d *model.Delivery) (string, error) {
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return "", fmt.Errorf("manifest dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Delivery manifest %s", d.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, kitchenName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Delivery manifest", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Delivery: %s", d.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Date: %s", d.DeliveryDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	if d.Shipper != nil {
		pdf.CellFormat(0, 5, fmt.Sprintf("Shipper: %s", d.Shipper.Username), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, order := range d.Orders {
		pdf.SetFont("Helvetica", "B", 10)
		store := order.StoreID.String()
		if order.Store != nil {
			store = order.Store.Name
		}
		pdf.CellFormat(0, 7, fmt.Sprintf("Order %s - %s", shortID(order.ID.String()), store), "B", 1, "L", false, 0, "")
		if order.Store != nil && order.Store.Address != "" {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(0, 5, order.Store.Address, "", 1, "L", false, 0, "")
		}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(120, 6, "Product", "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, "Quantity", "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, "Unit", "1", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, line := range order.Details {
			name, unit := line.ProductID.String(), ""
			if line.Product != nil {
				name, unit = line.Product.Name, line.Product.Unit
			}
			pdf.CellFormat(120, 6, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, fmt.Sprintf("%d", line.Quantity), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, unit, "1", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", time.Now().Format(time.RFC3339)), "", 1, "L", false, 0, "")

	path := filepath.Join(storageDir, fmt.Sprintf("manifest_%s.pdf", d.ID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
