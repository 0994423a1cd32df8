package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mintcleaning/booking-app/models"
	"github.com/mintcleaning/booking-app/realtime"
	"github.com/mintcleaning/booking-app/utils"
	"gorm.io/gorm"
)

type QuoteController struct {
	DB *gorm.DB
}

func NewQuoteController(db *gorm.DB) *QuoteController {
	return &QuoteController{DB: db}
}

// CreateQuote -> public quote intake, write-once
func (qc *QuoteController) CreateQuote(c *gin.Context) {
	type reqBody struct {
		Postcode              string  `json:"postcode" binding:"required"`
		Bedrooms              int     `json:"bedrooms" binding:"required,min=1"`
		Bathrooms             int     `json:"bathrooms" binding:"required,min=1"`
		Ironing               bool    `json:"ironing"`
		Laundry               bool    `json:"laundry"`
		InsideWindows         bool    `json:"inside_windows"`
		InsideFridge          bool    `json:"inside_fridge"`
		InsideOven            bool    `json:"inside_oven"`
		Duration              float64 `json:"duration" binding:"required,min=2"`
		BringCleaningProducts bool    `json:"bring_cleaning_products"`
		Frequency             string  `json:"frequency" binding:"required,oneof=more_than_weekly weekly biweekly one_off"`
		Email                 string  `json:"email" binding:"required,email"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	quote := models.Quote{
		Reference:             uuid.NewString(),
		Postcode:              body.Postcode,
		Bedrooms:              body.Bedrooms,
		Bathrooms:             body.Bathrooms,
		Ironing:               body.Ironing,
		Laundry:               body.Laundry,
		InsideWindows:         body.InsideWindows,
		InsideFridge:          body.InsideFridge,
		InsideOven:            body.InsideOven,
		Duration:              body.Duration,
		BringCleaningProducts: body.BringCleaningProducts,
		Frequency:             body.Frequency,
		Email:                 body.Email,
	}

	if err := qc.DB.Create(&quote).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastQuoteCreated(quote)
	utils.InfoLogger.Printf("Quote %s submitted for postcode %s", quote.Reference, quote.Postcode)

	utils.RespondJSON(c, http.StatusCreated, "Quote submitted", gin.H{
		"reference": quote.Reference,
	})
}

// GetAllQuotes
func (qc *QuoteController) GetAllQuotes(c *gin.Context) {
	var quotes []models.Quote
	query := qc.DB.Order("created_at DESC")
	if freq := c.Query("frequency"); freq != "" {
		query = query.Where("frequency = ?", freq)
	}
	if err := query.Find(&quotes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All quotes", quotes)
}

// GetQuoteByID
func (qc *QuoteController) GetQuoteByID(c *gin.Context) {
	idStr := c.Param("quote_id")
	id, _ := strconv.Atoi(idStr)

	var quote models.Quote
	if err := qc.DB.First(&quote, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Quote detail", quote)
}
