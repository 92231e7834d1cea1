package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/initializers"
	"github.com/namvh/foodexpress-api/models"
	"gorm.io/gorm"
)

// GetMenuItems lists the menu. Unavailable items are hidden unless the
// admin flag is set.
func GetMenuItems(ctx *gin.Context) {
	includeUnavailable := ctx.Query("admin") == "true"

	items, err := models.GetMenuItems(initializers.DB, includeUnavailable)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"menuItems": items})
}

func GetMenuItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	item, err := models.FindMenuItemByID(initializers.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Menu item not found")
			return
		}
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, item)
}

func CreateMenuItem(ctx *gin.Context) {
	var item models.MenuItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := models.CreateMenuItem(initializers.DB, &item); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":    "Menu item created successfully",
		"menuItemId": item.ID,
	})
}

func UpdateMenuItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var item models.MenuItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := models.UpdateMenuItem(initializers.DB, id, item); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Menu item updated successfully"})
}

func DeleteMenuItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := models.DeleteMenuItem(initializers.DB, id); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadMenuItemImage stores the uploaded file in S3 and saves the object URL
// on the menu item.
func UploadMenuItemImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := models.FindMenuItemByID(initializers.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Menu item not found")
			return
		}
		serverError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No image uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		serverError(ctx, err)
		return
	}
	defer file.Close()

	uploader, err := getAWSUploader()
	if err != nil {
		serverError(ctx, err)
		return
	}

	bucket := os.Getenv("S3_BUCKET")
	key := fmt.Sprintf("menu-items/%d-%d%s", id, time.Now().Unix(), filepath.Ext(fileHeader.Filename))

	result, err := uploader.Upload(ctx.Request.Context(), &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		serverError(ctx, err)
		return
	}

	if err := models.UpdateMenuItemImage(initializers.DB, id, result.Location); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Image uploaded successfully",
		"url":     result.Location,
	})
}
