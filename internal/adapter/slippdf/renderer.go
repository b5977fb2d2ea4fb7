// Package slippdf renders printable routing slips as A4 PDF documents.
package slippdf

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

const (
	pageMargin = 15.0
	qrSize     = 32.0
	qrPixels   = 256
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04"
)

// column widths in mm; they sum to the printable width of A4 portrait.
var legColumns = []struct {
	title string
	width float64
}{
	{"Office", 50},
	{"Status", 26},
	{"Seen", 26},
	{"Completed", 26},
	{"Action", 26},
	{"Remarks", 26},
}

// Renderer draws routing slips. The QR code on each slip points to the
// public tracking page under baseURL.
type Renderer struct {
	baseURL string
}

// NewRenderer creates a Renderer for the given public base URL.
func NewRenderer(baseURL string) *Renderer {
	return &Renderer{baseURL: strings.TrimRight(baseURL, "/")}
}

// TrackingURL returns the public page for a serial number.
func (r *Renderer) TrackingURL(serial string) string {
	return r.baseURL + "/track/" + url.PathEscape(serial)
}

// Render returns the PDF bytes for slip.
func (r *Renderer) Render(slip domain.RoutingSlip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Routing slip "+slip.SerialNumber, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	qrPng, err := qrcode.Encode(r.TrackingURL(slip.SerialNumber), qrcode.Medium, qrPixels)
	if err != nil {
		return nil, fmt.Errorf("slippdf: encode qr: %w", err)
	}
	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", imgOptions, bytes.NewReader(qrPng))
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("qr", pageW-pageMargin-qrSize, pageMargin, qrSize, qrSize, false, imgOptions, 0, "")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "ROUTING SLIP", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	field := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(38, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(pageW-2*pageMargin-38-qrSize, 6, tr(value), "", "L", false)
	}

	field("Serial number", slip.SerialNumber)
	field("Document", slip.DocumentTitle)
	field("From", slip.FromName)
	field("Date received", slip.DateReceived.Format(dateLayout))
	field("LCE action", lceText(&slip.LCEAction, slip.LCEKeyedInAction, slip.LCEActionDate))
	field("LCE reply", lceText(slip.LCEReply, slip.LCEKeyedInReply, slip.LCEReplyDate))

	if y := pdf.GetY(); y < pageMargin+qrSize+4 {
		pdf.SetY(pageMargin + qrSize + 4)
	}
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range legColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	if len(slip.Legs) == 0 {
		pdf.CellFormat(totalWidth(), 7, "No recipients assigned", "1", 1, "C", false, 0, "")
	}
	for _, leg := range slip.Legs {
		cells := []string{
			officeText(leg),
			string(leg.Status),
			timeText(leg.SeenAt),
			timeText(leg.CompletedAt),
			deref(leg.Action),
			deref(leg.Remarks),
		}
		for i, c := range legColumns {
			pdf.CellFormat(c.width, 7, tr(truncate(pdf, cells[i], c.width-2)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 7)
	pdf.CellFormat(0, 5, "Scan the code or visit "+r.TrackingURL(slip.SerialNumber), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("slippdf: output: %w", err)
	}
	return buf.Bytes(), nil
}

func totalWidth() float64 {
	var w float64
	for _, c := range legColumns {
		w += c.width
	}
	return w
}

func officeText(leg domain.RoutingLeg) string {
	if leg.RecipientInitial != nil && *leg.RecipientInitial != "" {
		return leg.RecipientName + " (" + *leg.RecipientInitial + ")"
	}
	return leg.RecipientName
}

func lceText(a *domain.LCEAction, keyedIn *string, at *time.Time) string {
	if a == nil {
		return "-"
	}
	s := string(*a)
	if *a == domain.LCEActionOthers && keyedIn != nil {
		s = *keyedIn
	}
	if at != nil {
		s += " (" + at.Format(dateLayout) + ")"
	}
	return s
}

func timeText(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(timeLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// truncate shortens s with an ellipsis so it fits into width mm at the current font.
func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
