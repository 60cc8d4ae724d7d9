package handlers

import (
	"net/http"

	"dataroom/utils"

	"github.com/gin-gonic/gin"
)

type CreateDataRoomRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func ListDataRooms(c *gin.Context) {
	rooms, err := getServices().DataRoom.ListDataRooms(c.Request.Context())
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, rooms)
}

func CreateDataRoom(c *gin.Context) {
	var req CreateDataRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	room, err := getServices().DataRoom.CreateDataRoom(c.Request.Context(), req.Name)
	if respondServiceError(c, err) {
		return
	}
	utils.Created(c, room)
}

func GetDataRoom(c *gin.Context) {
	room, err := getServices().DataRoom.GetDataRoom(c.Request.Context(), c.Param("id"))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, room)
}

func DeleteDataRoom(c *gin.Context) {
	err := getServices().DataRoom.DeleteDataRoom(c.Request.Context(), c.Param("id"))
	if respondServiceError(c, err) {
		return
	}
	utils.NoContent(c)
}
