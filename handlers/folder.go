package handlers

import (
	"net/http"

	"dataroom/services"
	"dataroom/utils"

	"github.com/gin-gonic/gin"
)

type CreateFolderRequest struct {
	Name           string  `json:"name" binding:"required,max=50"`
	DataRoomID     string  `json:"data_room_id" binding:"required"`
	ParentFolderID *string `json:"parent_folder_id"`
}

type RenameFolderRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

func CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	folder, err := getServices().Folder.CreateFolder(c.Request.Context(), services.CreateFolderInput{
		DataRoomID:     req.DataRoomID,
		ParentFolderID: req.ParentFolderID,
		Name:           req.Name,
	})
	if respondServiceError(c, err) {
		return
	}
	utils.Created(c, folder)
}

func GetFolder(c *gin.Context) {
	folder, err := getServices().Folder.GetFolder(c.Request.Context(), c.Param("id"))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, folder)
}

func RenameFolder(c *gin.Context) {
	var req RenameFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	folder, err := getServices().Folder.RenameFolder(c.Request.Context(), c.Param("id"), req.Name)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, folder)
}

func DeleteFolder(c *gin.Context) {
	folder, err := getServices().Folder.DeleteFolder(c.Request.Context(), c.Param("id"))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, folder)
}
