package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"

	"hairrent_back_end/internal/database"
)

// Stockage des preuves de paiement. MinIO quand il est configuré,
// sinon écriture sur disque local sous le dossier public servi en statique.

func uploadsDir() string {
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		return v
	}
	return filepath.Join("public", "uploads")
}

// SavePOP enregistre le fichier de preuve de paiement sous le nom donné et
// retourne le chemin (ou l'URL MinIO) à référencer sur la commande.
func SavePOP(ctx context.Context, file *multipart.FileHeader, filename string) (string, error) {
	if database.MinIO != nil {
		return savePOPMinIO(ctx, file, filename)
	}
	return savePOPLocal(file, filename)
}

func savePOPMinIO(ctx context.Context, file *multipart.FileHeader, filename string) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := "pop/" + filename

	_, err = database.MinIO.PutObject(ctx, bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName), nil
}

func savePOPLocal(file *multipart.FileHeader, filename string) (string, error) {
	dir := filepath.Join(uploadsDir(), "pop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/pop/" + filename, nil
}
