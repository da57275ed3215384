package handlers

import (
	"net/http"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/gin-gonic/gin"
)

func ListPurchaseOrders(c *gin.Context) {
	orders, err := models.GetPurchaseOrders(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListPurchaseOrders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func CreatePurchaseOrder(c *gin.Context) {
	var input models.NewPurchaseOrder
	if !bindJSON(c, "handlers", "CreatePurchaseOrder", &input) {
		return
	}
	order, err := models.CreatePurchaseOrder(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreatePurchaseOrder", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func ReceivePurchaseOrder(c *gin.Context) {
	order, err := models.ReceivePurchaseOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "ReceivePurchaseOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func CancelPurchaseOrder(c *gin.Context) {
	order, err := models.CancelPurchaseOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "CancelPurchaseOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func ListInventoryItems(c *gin.Context) {
	items, err := models.GetInventoryItems(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListInventoryItems", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func CreateInventoryItem(c *gin.Context) {
	var input models.NewInventoryItem
	if !bindJSON(c, "handlers", "CreateInventoryItem", &input) {
		return
	}
	item, err := models.CreateInventoryItem(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateInventoryItem", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func UpdateInventoryItem(c *gin.Context) {
	var input models.NewInventoryItem
	if !bindJSON(c, "handlers", "UpdateInventoryItem", &input) {
		return
	}
	item, err := models.UpdateInventoryItem(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers", "UpdateInventoryItem", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func DeleteInventoryItem(c *gin.Context) {
	item, err := models.DeleteInventoryItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "DeleteInventoryItem", err)
		return
	}
	c.JSON(http.StatusOK, item)
}
