package trip

import (
	"bytes"
	"fmt"
	"net/http"
	"os"

	"voyago/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/mongo"
)

func publicBaseURL() string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}
	return "http://localhost:4000"
}

// PrintItinerary handles GET /api/itineraries/:id/print and streams a
// PDF summary with a QR code linking back to the live itinerary.
func (h *Handler) PrintItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	itineraryID := ps.ByName("id")

	itinerary, err := GetByID(r.Context(), userID, itineraryID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Itinerary not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Could not load itinerary", http.StatusInternalServerError)
		return
	}

	shareLink := fmt.Sprintf("%s/itineraries/%s", publicBaseURL(), itinerary.ItineraryID)
	qrPNG, err := qrcode.Encode(shareLink, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("Trip to %s", itinerary.Destination))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%s to %s", itinerary.StartDate.Format("Jan 2, 2006"), itinerary.EndDate.Format("Jan 2, 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Safety: %s (%d/100)", itinerary.SafetyStatus, itinerary.SafetyScore))
	pdf.Ln(6)
	if itinerary.TotalBudget > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Budget: %.0f", itinerary.TotalBudget))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 12, 35, 35, false, imageOpts, 0, "")

	for _, day := range itinerary.Days {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 9, fmt.Sprintf("%s - %s", day.Date.Format("Mon, Jan 2"), day.Theme))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		for _, act := range day.Activities {
			pdf.Cell(0, 6, fmt.Sprintf("  %s-%s  %s (%s)", act.StartTime, act.EndTime, act.PlaceName, act.Category))
			pdf.Ln(5)
		}
		if day.TotalCost > 0 {
			pdf.SetFont("Arial", "I", 9)
			pdf.Cell(0, 6, fmt.Sprintf("  Day total: %.0f", day.TotalCost))
			pdf.Ln(5)
			pdf.SetFont("Arial", "", 10)
		}
		pdf.Ln(3)
	}

	if itinerary.AIExplanation != "" {
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, itinerary.AIExplanation, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=itinerary-"+itinerary.ItineraryID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
