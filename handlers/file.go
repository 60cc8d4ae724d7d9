package handlers

import (
	"fmt"
	"net/http"

	"dataroom/services"
	"dataroom/utils"

	"github.com/gin-gonic/gin"
)

type RenameFileRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

func UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "no file provided")
		return
	}
	name := c.PostForm("name")
	folderID := c.PostForm("folder_id")
	if folderID == "" {
		utils.Error(c, http.StatusBadRequest, "folder_id is required")
		return
	}

	src, err := header.Open()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "open uploaded file failed")
		return
	}
	defer src.Close()

	file, err := getServices().File.UploadFile(c.Request.Context(), services.UploadFileInput{
		FolderID:     folderID,
		Name:         name,
		OriginalName: header.Filename,
		Size:         header.Size,
		Content:      src,
	})
	if respondServiceError(c, err) {
		return
	}
	utils.Created(c, file)
}

func GetFile(c *gin.Context) {
	file, err := getServices().File.GetFile(c.Request.Context(), c.Param("id"))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, file)
}

func DownloadFile(c *gin.Context) {
	access, err := getServices().File.GetDownloadInfo(c.Request.Context(), c.Param("id"))
	if respondServiceError(c, err) {
		return
	}

	c.Header("Content-Type", access.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, access.DownloadName))
	http.ServeFile(c.Writer, c.Request, access.AbsPath)
}

func RenameFile(c *gin.Context) {
	var req RenameFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	file, err := getServices().File.RenameFile(c.Request.Context(), c.Param("id"), req.Name)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, file)
}

func DeleteFile(c *gin.Context) {
	file, err := getServices().File.DeleteFile(c.Request.Context(), c.Param("id"))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, file)
}
