package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/invcat-service/internal/pkg/logx"
	"github.com/light-bringer/invcat-service/internal/transport/grpc/catalog"
)

var (
	addr  = flag.String("addr", "localhost:9090", "gRPC server address")
	term  = flag.String("q", "", "Search term")
	page  = flag.Int("page", 1, "Page to show")
	token = flag.String("token", os.Getenv("INVCAT_TOKEN"), "Session bearer token")
)

func main() {
	flag.Parse()
	logx.Init()

	if err := run(); err != nil {
		logx.Fatal().Err(err).Msg("catalog client failed")
	}
}

func run() error {
	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	client := catalog.NewCatalogServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if *token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+*token)
	}

	view, err := client.OpenView(ctx)
	if err != nil {
		return fmt.Errorf("failed to open view: %w", err)
	}
	viewID := view.GetFields()["view_id"].GetStringValue()
	defer func() {
		req, _ := structpb.NewStruct(map[string]any{"view_id": viewID})
		if err := client.CloseView(ctx, req); err != nil {
			logx.Warn().Err(err).Msg("failed to close view")
		}
	}()

	if *term != "" {
		req, _ := structpb.NewStruct(map[string]any{"view_id": viewID, "term": *term})
		if view, err = client.Search(ctx, req); err != nil {
			return fmt.Errorf("failed to search: %w", err)
		}
	}

	if *page > 1 {
		req, _ := structpb.NewStruct(map[string]any{"view_id": viewID, "page": *page})
		if view, err = client.GotoPage(ctx, req); err != nil {
			return fmt.Errorf("failed to go to page %d: %w", *page, err)
		}
	}

	printView(view)
	return nil
}

func printView(view *structpb.Struct) {
	f := view.GetFields()
	fmt.Printf("Page %d of %d (%d products, status %s)\n\n",
		int(f["page_index"].GetNumberValue()),
		int(f["total_pages"].GetNumberValue()),
		int(f["total_count"].GetNumberValue()),
		f["status"].GetStringValue())

	if msg := f["error"].GetStringValue(); msg != "" {
		fmt.Printf("Last fetch failed: %s\n\n", msg)
	}

	for i, item := range f["items"].GetListValue().GetValues() {
		p := item.GetStructValue().GetFields()
		badge := ""
		if p["origin"].GetStringValue() == "local" {
			badge = " [new]"
		}
		fmt.Printf("%d. #%d %s%s\n", i+1, int64(p["id"].GetNumberValue()), p["title"].GetStringValue(), badge)
		fmt.Printf("   %s / %s\n", p["brand"].GetStringValue(), p["category"].GetStringValue())
		fmt.Printf("   $%.2f (was $%.2f, %.2f%% off)  rating %.2f  stock %d\n\n",
			p["price"].GetNumberValue(),
			p["original_price"].GetNumberValue(),
			p["discount_percentage"].GetNumberValue(),
			p["rating"].GetNumberValue(),
			int64(p["stock"].GetNumberValue()))
	}
}
