package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/initializers"
	"github.com/namvh/foodexpress-api/models"
)

func GetCategories(ctx *gin.Context) {
	categories, err := models.GetCategories(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": categories})
}

func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := models.CreateCategory(initializers.DB, &category); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":    "Category created successfully",
		"categoryId": category.ID,
	})
}

func UpdateCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := models.UpdateCategory(initializers.DB, id, category); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category updated successfully"})
}

func DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := models.DeleteCategory(initializers.DB, id); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
