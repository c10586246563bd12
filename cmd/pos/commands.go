package main

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"io"
	"net/http"
	"os"
	"os/signal"
	"pos/pkg/domain/model"
	"pos/pkg/domain/service"
	"pos/pkg/infrastructure/catalog"
	"pos/pkg/infrastructure/event"
	"pos/pkg/infrastructure/transport"
	"syscall"
	"text/tabwriter"
	"time"
)

type storeAction func(c *cli.Context, cfg *config, store service.StoreService) error

func withStore(action storeAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := parseEnv()
		if err != nil {
			return err
		}
		closeLog, err := initLogger(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		storage, err := openStorage(cfg)
		if err != nil {
			return err
		}
		if cl, ok := storage.(closer); ok {
			defer cl.Close()
		}

		store, err := service.NewStoreService(storage, event.NewLogDispatcher(log.StandardLogger()), model.SystemClock{})
		if err != nil {
			return err
		}
		return action(c, cfg, store)
	}
}

func productCommand() *cli.Command {
	return &cli.Command{
		Name:  "product",
		Usage: "manage the product catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all products",
				Action: withStore(func(c *cli.Context, _ *config, store service.StoreService) error {
					printProducts(c.App.Writer, store.Products())
					return nil
				}),
			},
			{
				Name:  "add",
				Usage: "add a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "price", Required: true},
					&cli.IntFlag{Name: "stock"},
				},
				Action: withStore(func(c *cli.Context, _ *config, store service.StoreService) error {
					price, err := decimal.NewFromString(c.String("price"))
					if err != nil {
						return errors.Wrap(err, "invalid price")
					}
					product, err := store.AddProduct(c.String("name"), price, c.Int("stock"))
					if err != nil {
						return err
					}
					printProducts(c.App.Writer, []model.Product{product})
					return nil
				}),
			},
			{
				Name:  "update",
				Usage: "change name, price or stock of a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "price"},
					&cli.IntFlag{Name: "stock"},
				},
				Action: withStore(func(c *cli.Context, _ *config, store service.StoreService) error {
					id, err := findProductID(store, c.String("id"))
					if err != nil {
						return err
					}
					update, err := productUpdateFromFlags(c)
					if err != nil {
						return err
					}
					if err := store.UpdateProduct(id, update); err != nil {
						return err
					}
					product, _ := store.FindProduct(id)
					printProducts(c.App.Writer, []model.Product{product})
					return nil
				}),
			},
			{
				Name:  "delete",
				Usage: "remove a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true},
				},
				Action: withStore(func(c *cli.Context, _ *config, store service.StoreService) error {
					id, err := findProductID(store, c.String("id"))
					if err != nil {
						return err
					}
					return store.DeleteProduct(id)
				}),
			},
			{
				Name:      "import",
				Usage:     "add products from a YAML catalog",
				ArgsUsage: "<file>",
				Action: withStore(func(c *cli.Context, _ *config, store service.StoreService) error {
					if c.NArg() != 1 {
						return errors.New("expected exactly one catalog file")
					}
					entries, err := catalog.ParseFile(c.Args().First())
					if err != nil {
						return err
					}
					added, err := catalog.Import(store, entries)
					printProducts(c.App.Writer, added)
					return err
				}),
			},
		},
	}
}

func sellCommand() *cli.Command {
	return &cli.Command{
		Name:  "sell",
		Usage: "ring up items and complete a transaction",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "item", Usage: "<product-id>[:<quantity>]", Required: true},
		},
		Action: withStore(func(c *cli.Context, _ *config, store service.StoreService) error {
			items, err := parseSaleItems(c.StringSlice("item"))
			if err != nil {
				return err
			}
			if err := fillCart(store, items); err != nil {
				return err
			}
			transaction, err := store.CompleteTransaction()
			if err != nil {
				return err
			}
			if transaction == nil {
				return errors.New("nothing to sell")
			}
			printTransactions(c.App.Writer, []model.Transaction{*transaction})
			return nil
		}),
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "show today's sales",
		Action: withStore(func(c *cli.Context, cfg *config, store service.StoreService) error {
			summary := store.TodaySummary(cfg.LowStockThreshold)
			w := c.App.Writer
			fmt.Fprintf(w, "Date:\t%s\n", summary.Date.Format("2006-01-02"))
			fmt.Fprintf(w, "Products:\t%d (%d low on stock)\n", summary.ProductCount, summary.LowStockCount)
			fmt.Fprintf(w, "Transactions:\t%d\n", summary.TransactionCount)
			fmt.Fprintf(w, "Items sold:\t%d\n", summary.ItemsSold)
			fmt.Fprintf(w, "Revenue:\t%s\n", summary.Revenue.StringFixed(2))
			fmt.Fprintf(w, "Average:\t%s\n\n", summary.AverageTransaction.StringFixed(2))
			printTransactions(w, store.TodayTransactions())
			return nil
		}),
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the HTTP API",
		Action: withStore(func(c *cli.Context, cfg *config, store service.StoreService) error {
			srv := &http.Server{
				Addr:              cfg.ServeAddress,
				Handler:           transport.Router(store, cfg.LowStockThreshold),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				log.WithFields(log.Fields{"url": cfg.ServeAddress, "storage": cfg.Storage}).Info("Starting server")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return errors.Wrap(err, "failed to start server")
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				log.Info("Shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		}),
	}
}

func findProductID(store service.StoreService, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid product id %q", raw)
	}
	if _, ok := store.FindProduct(id); !ok {
		return uuid.Nil, errors.Wrap(model.ErrProductNotFound, id.String())
	}
	return id, nil
}

func productUpdateFromFlags(c *cli.Context) (model.ProductUpdate, error) {
	var update model.ProductUpdate
	if c.IsSet("name") {
		name := c.String("name")
		update.Name = &name
	}
	if c.IsSet("price") {
		price, err := decimal.NewFromString(c.String("price"))
		if err != nil {
			return update, errors.Wrap(err, "invalid price")
		}
		update.Price = &price
	}
	if c.IsSet("stock") {
		stock := c.Int("stock")
		update.Stock = &stock
	}
	if update.IsEmpty() {
		return update, errors.New("nothing to update")
	}
	return update, nil
}

func printProducts(out io.Writer, products []model.Product) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Price.String(), p.Stock)
	}
	_ = w.Flush()
}

func printTransactions(out io.Writer, transactions []model.Transaction) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTRANSACTION\tITEMS\tTOTAL")
	for _, t := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", t.CreatedAt.Local().Format("15:04"), t.ID, t.ItemCount(), t.Total.String())
		for _, item := range t.Items {
			fmt.Fprintf(w, "\t  %s x%d\t\t%s\n", item.Product.Name, item.Quantity, item.Subtotal().String())
		}
	}
	_ = w.Flush()
}
