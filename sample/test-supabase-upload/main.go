package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/xavierca1/mapeo-rewards/internal/infra/integration/supabase"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

// Envia um arquivo local para o bucket configurado, para conferir credenciais e políticas.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	if os.Getenv("SUPABASE_URL") == "" || os.Getenv("SUPABASE_SERVICE_KEY") == "" {
		log.Fatal("❌ SUPABASE_URL e SUPABASE_SERVICE_KEY devem estar configurados no .env")
	}
	if len(os.Args) < 2 {
		log.Fatal("uso: test-supabase-upload <arquivo> [agent-id]")
	}

	bucket := os.Getenv("SUPABASE_BUCKET")
	if bucket == "" {
		bucket = "id-documents"
	}
	agentID := "sample-agent"
	if len(os.Args) > 2 {
		agentID = os.Args[2]
	}

	content, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Erro ao ler arquivo: %v", err)
	}

	client := supabase.NewClient(os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_SERVICE_KEY"), bucket)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("🔄 Verificando bucket...")
	if err := client.Ping(ctx); err != nil {
		log.Fatalf("Bucket inacessível: %v", err)
	}

	doc := usecase.IdentityDocument{Filename: filepath.Base(os.Args[1]), Content: content}
	fmt.Printf("📋 Arquivo: %s (%d bytes, dentro da recomendação: %v)\n", doc.Filename, doc.Size(), doc.MeetsRecommendations())

	path, err := client.UploadIdentityDocument(ctx, agentID, doc)
	if err != nil {
		log.Fatalf("Erro no upload: %v", err)
	}

	fmt.Printf("Documento enviado com sucesso!\n")
	fmt.Printf(" Caminho: %s/%s\n", bucket, path)
}
