package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	burnoutdomain "github.com/smallbiznis/burnout/internal/burnout/domain"
	healthdomain "github.com/smallbiznis/burnout/internal/healthdata/domain"
)

type SubmitHealthDataRequest struct {
	HeartRate     numberOrString `json:"heartRate"`
	SleepDuration numberOrString `json:"sleepDuration"`
	SleepQuality  numberOrString `json:"sleepQuality"`
	ActivityLevel numberOrString `json:"activityLevel"`
	StressLevel   numberOrString `json:"stressLevel"`
}

func (r SubmitHealthDataRequest) toDomain() healthdomain.SubmitRecordRequest {
	return healthdomain.SubmitRecordRequest{
		HeartRate:     r.HeartRate.Ptr(),
		SleepDuration: r.SleepDuration.Ptr(),
		SleepQuality:  r.SleepQuality.Ptr(),
		ActivityLevel: r.ActivityLevel.Ptr(),
		StressLevel:   r.StressLevel.Ptr(),
	}
}

func (s *Server) ListHealthData(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	records, err := s.healthData.ListRecent(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if records == nil {
		records = []healthdomain.Record{}
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (s *Server) TodayHealthData(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	canSubmit, err := s.healthData.CanSubmit(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"can_submit": canSubmit})
}

// SubmitHealthData stores today's record and scores the refreshed window. When scoring fails
// the stored record is still returned alongside the 502.
func (s *Server) SubmitHealthData(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req SubmitHealthDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.checkin.Submit(c.Request.Context(), userID, req.toDomain())
	if err != nil {
		if result.Record != nil && errors.Is(err, burnoutdomain.ErrExternalService) {
			abortWithData(c, err, result.Record)
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Health data submitted successfully",
		"data":              result.Record,
		"burnoutPrediction": result.Assessment,
	})
}
