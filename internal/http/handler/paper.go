package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"paperhub/internal/http/middleware"
	"paperhub/internal/service"
)

// UploadPaper accepts a multipart submission (file, title, content, mentorId)
// and returns the stored paper summary.
func UploadPaper(svc service.PaperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := svc.Submit(c.UserContext(), service.SubmitRequest{
			Reader:       f,
			OriginalName: fh.Filename,
			ContentType:  ct,
			Size:         fh.Size,
			Title:        c.FormValue("title"),
			Content:      c.FormValue("content"),
			SubmitterID:  middleware.UserIDFromCtx(c),
			MentorID:     c.FormValue("mentorId"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListPapers returns papers the authenticated user uploaded or was assigned,
// with limit & offset pagination.
func ListPapers(svc service.PaperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListForUser(c.UserContext(), middleware.UserIDFromCtx(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetPaper returns a single paper record by ID.
func GetPaper(svc service.PaperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		paper, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(paper)
	}
}

// presignExpiry bounds how long a generated download link stays valid.
const presignExpiry = 15 * time.Minute

// PresignPaper returns a time-limited URL for downloading the stored file
// directly from object storage, bypassing this service for the transfer.
func PresignPaper(svc service.PaperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		url, err := svc.PresignDownload(c.UserContext(), id, presignExpiry)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"url":       url,
			"expiresAt": time.Now().Add(presignExpiry).UTC(),
		})
	}
}

// DownloadPaper streams the stored file back with the original filename as an
// attachment. The body is not buffered in memory.
func DownloadPaper(svc service.PaperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, paper, err := svc.Download(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, paper.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", paper.OriginalName))

		size := int(paper.Size)
		if size <= 0 {
			// Unknown size: fall back to chunked transfer
			size = -1
		}
		// SendStream closes rc once the body has been written.
		return c.SendStream(rc, size)
	}
}
