package dto

type ExportDirectoryRequest struct {
	Dir string `json:"dir" binding:"required"`
}

type ExportBucketResponse struct {
	Objects []string `json:"objects"`
}
