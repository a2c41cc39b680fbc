// groupadd 创建帖子分组
//
//	go run ./cmd/groupadd -title "Cats" -slug cats -description "All about cats"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/database"
	"github.com/d60-Lab/yatube/pkg/logger"
)

func main() {
	var in service.GroupInput
	list := flag.Bool("list", false, "list existing groups")
	flag.StringVar(&in.Title, "title", "", "group title (max 200)")
	flag.StringVar(&in.Slug, "slug", "", "unique slug: letters, digits, '-' and '_'")
	flag.StringVar(&in.Description, "description", "", "group description")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, "console"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	groups := service.NewGroupService(repository.NewGroupRepository(db))
	ctx := context.Background()

	if *list {
		all, err := groups.List(ctx)
		if err != nil {
			logger.Fatal("list groups", zap.Error(err))
		}
		for _, g := range all {
			fmt.Printf("%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
		}
		return
	}

	g, err := groups.Create(ctx, in)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			for field, msg := range ve.Fields {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
			}
			os.Exit(2)
		}
		logger.Fatal("create group", zap.Error(err))
	}
	logger.Info("group created", zap.Uint64("id", g.ID), zap.String("slug", g.Slug))
}
