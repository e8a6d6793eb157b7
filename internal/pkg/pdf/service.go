// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/billing"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateInvoice renders an invoice into a PDF document
func (s *Service) GenerateInvoice(invoice *billing.Invoice) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%06d", invoice.ID),
		InvoiceDate:   invoice.CreatedAt.Format("January 2, 2006"),
		GeneratedAt:   time.Now().Format("January 2, 2006"),
		Invoice:       invoice,
		Total:         fmt.Sprintf("%.2f", invoice.Total()),
		Company: CompanyInfo{
			Name:    s.config.Company.Name,
			Address: s.config.Company.Address,
			Phone:   s.config.Company.Phone,
			Email:   s.config.Company.Email,
		},
	}
	if invoice.Client != nil {
		data.ClientName = invoice.Client.Name
	}
	if invoice.CreatedBy != nil {
		data.SoldBy = invoice.CreatedBy.FullName
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string           `json:"invoice_number"`
	InvoiceDate   string           `json:"invoice_date"`
	GeneratedAt   string           `json:"generated_at"`
	ClientName    string           `json:"client_name"`
	SoldBy        string           `json:"sold_by"`
	Total         string           `json:"total"`
	Invoice       *billing.Invoice `json:"invoice"`
	Company       CompanyInfo      `json:"company"`
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
            font-size: 12px;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #333;
            padding-bottom: 15px;
        }
        .company-info h1 {
            margin: 0 0 5px 0;
            font-size: 22px;
        }
        .company-info p {
            margin: 2px 0;
        }
        .invoice-info {
            text-align: right;
        }
        .invoice-title {
            font-size: 26px;
            font-weight: bold;
            letter-spacing: 2px;
        }
        .invoice-info p {
            margin: 2px 0;
        }
        .meta {
            margin-bottom: 25px;
        }
        .meta p {
            margin: 3px 0;
        }
        table.items {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 25px;
        }
        table.items th {
            background: #333;
            color: #fff;
            padding: 8px;
            text-align: left;
        }
        table.items td {
            padding: 8px;
            border-bottom: 1px solid #ddd;
        }
        table.items .num {
            text-align: right;
        }
        .total-row {
            text-align: right;
            font-size: 14px;
            font-weight: bold;
        }
        .footer {
            margin-top: 40px;
            font-size: 10px;
            color: #888;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            <p>Phone: {{.Company.Phone}}</p>
            <p>Email: {{.Company.Email}}</p>
        </div>
        <div class="invoice-info">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
        </div>
    </div>

    <div class="meta">
        {{if .ClientName}}<p><strong>Billed To:</strong> {{.ClientName}}</p>{{end}}
        {{if .SoldBy}}<p><strong>Sold By:</strong> {{.SoldBy}}</p>{{end}}
    </div>

    <table class="items">
        <thead>
            <tr>
                <th>Code</th>
                <th>Item</th>
                <th class="num">Quantity</th>
                <th class="num">Amount</th>
            </tr>
        </thead>
        <tbody>
            {{range .Invoice.Items}}
            <tr>
                <td>{{.ItemCode}}</td>
                <td>{{.ItemName}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{money .Amount}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <p class="total-row">Total: {{.Total}}</p>

    <div class="footer">
        <p>Generated on {{.GeneratedAt}} &mdash; {{.Company.Name}}</p>
    </div>
</body>
</html>
`
