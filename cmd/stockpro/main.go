// stockpro es el cliente de línea de comandos del inventario StockPro.
//
// Uso: stockpro <comando> [argumentos]
//
// Comandos: login, register, logout, whoami, products, categories,
// movements, dashboard, report, label. Ejecutar sin argumentos imprime
// la ayuda.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-cli/internal/application/auth"
	"github.com/jhoicas/stockpro-cli/internal/application/dto"
	"github.com/jhoicas/stockpro-cli/internal/application/inventory"
	"github.com/jhoicas/stockpro-cli/internal/application/reports"
	"github.com/jhoicas/stockpro-cli/internal/application/session"
	"github.com/jhoicas/stockpro-cli/internal/domain"
	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	domaininv "github.com/jhoicas/stockpro-cli/internal/domain/inventory"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
	"github.com/jhoicas/stockpro-cli/internal/infrastructure/localstore"
	infrapdf "github.com/jhoicas/stockpro-cli/internal/infrastructure/pdf"
	"github.com/jhoicas/stockpro-cli/internal/infrastructure/rest"
	"github.com/jhoicas/stockpro-cli/pkg/config"
	"github.com/jhoicas/stockpro-cli/pkg/logger"
	"github.com/jhoicas/stockpro-cli/pkg/token"
)

// app agrupa las dependencias ya cableadas que consumen los comandos.
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	sess       *session.Store
	authUC     *auth.AuthUseCase
	movementUC *inventory.MovementUseCase
	loader     *reports.Loader
	products   repository.ProductRepository
	categories repository.CategoryRepository
	pdf        *infrapdf.MarotoReportGenerator
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: getenvDefault("LOG_LEVEL", "warn"),
	})

	store := localstore.NewSessionStore(cfg.Session.Dir)
	sess := session.NewStore(store, func(tok string) (*entity.User, error) {
		claims, err := token.Identity(tok)
		if err != nil {
			return nil, err
		}
		return &entity.User{
			Email:    claims.Email,
			FullName: claims.FullName,
			Role:     claims.Role,
		}, nil
	})
	sess.Init()

	client := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), sess, log)
	productRepo := rest.NewProductRepository(client)
	categoryRepo := rest.NewCategoryRepository(client)
	movementRepo := rest.NewStockMovementRepository(client)
	authGateway := rest.NewAuthGateway(client)

	a := &app{
		cfg:        cfg,
		log:        log,
		sess:       sess,
		authUC:     auth.NewAuthUseCase(authGateway, sess),
		movementUC: inventory.NewMovementUseCase(movementRepo, nil),
		loader:     reports.NewLoader(productRepo, categoryRepo, movementRepo),
		products:   productRepo,
		categories: categoryRepo,
		pdf:        infrapdf.NewMarotoReportGenerator(),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	args := os.Args[2:]

	var cmdErr error
	switch os.Args[1] {
	case "login":
		cmdErr = a.cmdLogin(ctx, args)
	case "register":
		cmdErr = a.cmdRegister(ctx, args)
	case "logout":
		cmdErr = a.cmdLogout()
	case "whoami":
		cmdErr = a.cmdWhoami()
	case "products":
		cmdErr = a.cmdProducts(ctx, args)
	case "categories":
		cmdErr = a.cmdCategories(ctx, args)
	case "movements":
		cmdErr = a.cmdMovements(ctx, args)
	case "dashboard":
		cmdErr = a.cmdDashboard(ctx)
	case "report":
		cmdErr = a.cmdReport(ctx, args)
	case "label":
		cmdErr = a.cmdLabel(ctx, args)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Comando desconocido: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		if errors.Is(cmdErr, domain.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "Sesión expirada o inválida. Vuelve a iniciar sesión con 'stockpro login'.")
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", cmdErr)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `stockpro — cliente de inventario StockPro

Uso: stockpro <comando> [argumentos]

Sesión:
  login      -email -password             Iniciar sesión
  register   -email -password -confirm -name   Crear cuenta
  logout                                  Cerrar sesión
  whoami                                  Mostrar la sesión activa

Inventario:
  products   list [-search -category -low] | show <id> | create | update <id> | delete <id>
  categories list | create -name [-color] | update <id> -name [-color] | delete <id>
  movements  list [-limit] | add -product -qty -type entrada|salida [-reason]

Reportes:
  dashboard                               Resumen del inventario
  report     csv|pdf [-o archivo]         Exportar reporte de inventario
  label      <productID> [-o archivo]     Etiqueta QR del producto
`)
}

// ── Sesión ────────────────────────────────────────────────────────────────────

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "correo electrónico")
	password := fs.String("password", "", "contraseña")
	_ = fs.Parse(args)

	user, err := a.authUC.Login(ctx, dto.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("Sesión iniciada como %s (%s)\n", user.FullName, user.Email)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "correo electrónico")
	password := fs.String("password", "", "contraseña")
	confirm := fs.String("confirm", "", "confirmación de contraseña")
	name := fs.String("name", "", "nombre completo")
	_ = fs.Parse(args)

	user, authenticated, err := a.authUC.Register(ctx, dto.RegisterRequest{
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
		FullName:        *name,
	})
	if err != nil {
		return err
	}
	if authenticated {
		fmt.Printf("Cuenta creada, sesión iniciada como %s\n", user.Email)
	} else {
		fmt.Printf("Cuenta creada para %s. Inicia sesión con 'stockpro login'.\n", *email)
	}
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.authUC.Logout(); err != nil {
		return err
	}
	fmt.Println("Sesión cerrada.")
	return nil
}

func (a *app) cmdWhoami() error {
	if !a.sess.IsAuthenticated() {
		fmt.Println("No hay sesión activa.")
		return nil
	}
	u := a.sess.User()
	fmt.Printf("Email:  %s\n", u.Email)
	if u.FullName != "" {
		fmt.Printf("Nombre: %s\n", u.FullName)
	}
	if u.Role != "" {
		fmt.Printf("Rol:    %s\n", u.Role)
	}
	return nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: stockpro products list|show|create|update|delete")
	}
	switch args[0] {
	case "list":
		return a.productsList(ctx, args[1:])
	case "show":
		return a.productsShow(ctx, args[1:])
	case "create":
		return a.productsSave(ctx, args[1:], "")
	case "update":
		if len(args) < 2 {
			return fmt.Errorf("uso: stockpro products update <id> [flags]")
		}
		return a.productsSave(ctx, args[2:], args[1])
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("uso: stockpro products delete <id>")
		}
		if err := a.products.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Producto eliminado.")
		return nil
	default:
		return fmt.Errorf("subcomando desconocido: products %s", args[0])
	}
}

func (a *app) productsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products list", flag.ExitOnError)
	search := fs.String("search", "", "buscar por nombre o SKU")
	category := fs.String("category", "", "filtrar por categoría (id)")
	low := fs.Bool("low", false, "solo productos en stock bajo")
	_ = fs.Parse(args)

	filter := repository.ProductFilter{Search: *search, CategoryID: *category}
	if *low {
		t := true
		filter.LowStock = &t
	}

	rm, err := a.loader.Load(ctx)
	if err != nil {
		return err
	}
	products := rm.Products
	if *search != "" || *category != "" || *low {
		products, err = a.products.List(ctx, filter)
		if err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tSKU\tCATEGORÍA\tPRECIO\tSTOCK\tESTADO")
	for _, p := range products {
		status := "OK"
		if domaininv.IsLowStock(p) {
			status = reports.LowStockLabel
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			p.ID, p.Name, p.SKU,
			reports.CategoryName(p.CategoryID, rm.Categories),
			p.Price.StringFixed(2), p.CurrentStock, status,
		)
	}
	return w.Flush()
}

func (a *app) productsShow(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("uso: stockpro products show <id>")
	}
	p, err := a.products.GetByID(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("ID:       %s\n", p.ID)
	fmt.Printf("Nombre:   %s\n", p.Name)
	fmt.Printf("SKU:      %s\n", p.SKU)
	fmt.Printf("Precio:   %s\n", p.Price.StringFixed(2))
	fmt.Printf("Stock:    %d\n", p.CurrentStock)
	fmt.Printf("Umbral:   %d\n", domaininv.EffectiveThreshold(*p))
	if domaininv.IsLowStock(*p) {
		fmt.Println("Estado:   " + reports.LowStockLabel)
	}
	if p.ImageURL != "" {
		fmt.Printf("Imagen:   %s\n", p.ImageURL)
	}
	return nil
}

// productsSave comparte flags entre create y update; id vacío crea.
func (a *app) productsSave(ctx context.Context, args []string, id string) error {
	fs := flag.NewFlagSet("products save", flag.ExitOnError)
	name := fs.String("name", "", "nombre del producto")
	sku := fs.String("sku", "", "SKU")
	category := fs.String("category", "", "id de la categoría")
	price := fs.String("price", "0", "precio unitario")
	stock := fs.Int("stock", 0, "stock inicial")
	threshold := fs.Int("threshold", 10, "umbral mínimo de stock")
	imageURL := fs.String("image-url", "", "URL de la imagen")
	imagePath := fs.String("image", "", "ruta local de la imagen a subir")
	_ = fs.Parse(args)

	priceDec, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("%w: precio %q no es numérico", domain.ErrInvalidInput, *price)
	}

	form := repository.ProductForm{
		Name:              *name,
		SKU:               *sku,
		CategoryID:        *category,
		Price:             priceDec,
		CurrentStock:      *stock,
		MinStockThreshold: *threshold,
		ImageURL:          *imageURL,
	}
	if *imagePath != "" {
		content, err := os.ReadFile(*imagePath)
		if err != nil {
			return fmt.Errorf("leer imagen: %w", err)
		}
		form.ImageFile = &repository.ImageFile{
			Name:    filepath.Base(*imagePath),
			Content: content,
		}
	}

	var p *entity.Product
	if id == "" {
		p, err = a.products.Create(ctx, form)
	} else {
		p, err = a.products.Update(ctx, id, form)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Producto guardado: %s (%s)\n", p.Name, p.ID)
	return nil
}

// ── Categorías ────────────────────────────────────────────────────────────────

func (a *app) cmdCategories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: stockpro categories list|create|update|delete")
	}
	switch args[0] {
	case "list":
		cats, err := a.categories.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOMBRE\tCOLOR")
		for _, c := range cats {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.ColorHex)
		}
		return w.Flush()
	case "create":
		form, err := categoryForm(args[1:])
		if err != nil {
			return err
		}
		c, err := a.categories.Create(ctx, *form)
		if err != nil {
			return err
		}
		fmt.Printf("Categoría creada: %s (%s)\n", c.Name, c.ID)
		return nil
	case "update":
		if len(args) < 2 {
			return fmt.Errorf("uso: stockpro categories update <id> -name [-color]")
		}
		form, err := categoryForm(args[2:])
		if err != nil {
			return err
		}
		c, err := a.categories.Update(ctx, args[1], *form)
		if err != nil {
			return err
		}
		fmt.Printf("Categoría actualizada: %s\n", c.Name)
		return nil
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("uso: stockpro categories delete <id>")
		}
		if err := a.categories.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Categoría eliminada.")
		return nil
	default:
		return fmt.Errorf("subcomando desconocido: categories %s", args[0])
	}
}

func categoryForm(args []string) (*repository.CategoryForm, error) {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	name := fs.String("name", "", "nombre de la categoría")
	color := fs.String("color", "", "color hex, ej. #3b82f6")
	_ = fs.Parse(args)
	if *name == "" {
		return nil, fmt.Errorf("%w: el nombre de la categoría es obligatorio", domain.ErrInvalidInput)
	}
	return &repository.CategoryForm{Name: *name, ColorHex: *color}, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

func (a *app) cmdMovements(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: stockpro movements list|add")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("movements list", flag.ExitOnError)
		limit := fs.Int("limit", 0, "máximo de movimientos a mostrar (0 = todos)")
		_ = fs.Parse(args[1:])

		var (
			movements []entity.StockMovement
			err       error
		)
		if *limit > 0 {
			movements, err = a.movementUC.RecentActivity(ctx, *limit)
		} else {
			movements, err = a.movementUC.ListMovements(ctx)
		}
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FECHA\tTIPO\tPRODUCTO\tCANTIDAD\tANTES\tDESPUÉS\tMOTIVO\tUSUARIO")
		for _, m := range movements {
			date := "—"
			if !m.Date.IsZero() {
				date = m.Date.Local().Format("02/01/2006 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
				date, m.Type.Label(), m.ProductName, m.Quantity,
				m.StockBefore, m.StockAfter, m.Reason, m.UserName,
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\nEntradas: %d   Salidas: %d\n",
			inventory.CountByType(movements, entity.MovementEntry),
			inventory.CountByType(movements, entity.MovementExit),
		)
		return nil
	case "add":
		fs := flag.NewFlagSet("movements add", flag.ExitOnError)
		product := fs.String("product", "", "id del producto")
		qty := fs.Int("qty", 0, "cantidad (mínimo 1)")
		kind := fs.String("type", "", "entrada o salida")
		reason := fs.String("reason", "", "motivo del movimiento")
		_ = fs.Parse(args[1:])

		mt, err := parseMovementType(*kind)
		if err != nil {
			return err
		}
		m, err := a.movementUC.RegisterMovement(ctx, inventory.RegisterMovementInput{
			ProductID: *product,
			Quantity:  *qty,
			Type:      mt,
			Reason:    *reason,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s registrada: %d unidades (stock %d -> %d)\n",
			m.Type.Label(), m.Quantity, m.StockBefore, m.StockAfter)
		return nil
	default:
		return fmt.Errorf("subcomando desconocido: movements %s", args[0])
	}
}

func parseMovementType(s string) (entity.MovementType, error) {
	switch strings.ToLower(s) {
	case "entrada", "entry", "0":
		return entity.MovementEntry, nil
	case "salida", "exit", "1":
		return entity.MovementExit, nil
	default:
		return 0, fmt.Errorf("%w: tipo de movimiento %q (usa entrada o salida)", domain.ErrInvalidInput, s)
	}
}

// ── Reportes ──────────────────────────────────────────────────────────────────

func (a *app) cmdDashboard(ctx context.Context) error {
	rm, err := a.loader.Load(ctx)
	if err != nil {
		return err
	}
	movements, err := a.movementUC.RecentActivity(ctx, 5)
	if err != nil {
		return err
	}

	stats := reports.DashboardStats(rm.Products)
	fmt.Printf("Productos:            %d\n", stats.TotalProducts)
	fmt.Printf("Valor del inventario: $%s\n", stats.InventoryValue.StringFixed(2))
	fmt.Printf("Stock bajo:           %d\n", stats.LowStockItems)

	if byCat := reports.ValueByCategory(rm.Products, rm.Categories); len(byCat) > 0 {
		fmt.Println("\nValor por categoría:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, s := range byCat {
			fmt.Fprintf(w, "  %s\t$%s\n", s.Name, s.Value.StringFixed(2))
		}
		w.Flush()
	}

	if dist := reports.StockStatusDistribution(rm.Products); len(dist) > 0 {
		fmt.Println("\nEstado del stock:")
		for _, s := range dist {
			fmt.Printf("  %s: %d\n", s.Name, s.Value)
		}
	}

	if len(movements) > 0 {
		fmt.Println("\nActividad reciente:")
		for _, m := range movements {
			fmt.Printf("  %s %s x%d (%s)\n", m.Type.Label(), m.ProductName, m.Quantity, m.Reason)
		}
	}
	return nil
}

func (a *app) cmdReport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: stockpro report csv|pdf [-o archivo]")
	}
	format := args[0]

	fs := flag.NewFlagSet("report", flag.ExitOnError)
	out := fs.String("o", "", "archivo de salida (por defecto se deriva de la fecha)")
	_ = fs.Parse(args[1:])

	rm, err := a.loader.Load(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	var content []byte
	switch format {
	case "csv":
		content = reports.ExportCSV(rm.Products, rm.Categories)
		if *out == "" {
			*out = reports.CSVFileName(now)
		}
	case "pdf":
		content, err = a.pdf.InventoryReport(rm.Products, rm.Categories, now)
		if err != nil {
			return err
		}
		if *out == "" {
			*out = "Reporte_Inventario_" + now.Format("2006-01-02") + ".pdf"
		}
	default:
		return fmt.Errorf("formato desconocido: %s (usa csv o pdf)", format)
	}

	if err := os.WriteFile(*out, content, 0o644); err != nil {
		return fmt.Errorf("escribir reporte: %w", err)
	}
	fmt.Printf("Reporte generado: %s (%d productos)\n", *out, len(rm.Products))
	return nil
}

func (a *app) cmdLabel(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("uso: stockpro label <productID> [-o archivo]")
	}
	id := args[0]

	fs := flag.NewFlagSet("label", flag.ExitOnError)
	out := fs.String("o", "", "archivo de salida")
	_ = fs.Parse(args[1:])

	p, err := a.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	detailURL := strings.TrimRight(a.cfg.API.QRBaseURL(), "/") + "/products/" + p.ID
	content, err := a.pdf.ProductLabel(*p, detailURL)
	if err != nil {
		return err
	}

	if *out == "" {
		*out = "Etiqueta_" + sanitizeFileName(p.SKU) + ".pdf"
	}
	if err := os.WriteFile(*out, content, 0o644); err != nil {
		return fmt.Errorf("escribir etiqueta: %w", err)
	}
	fmt.Printf("Etiqueta generada: %s\n", *out)
	return nil
}

func sanitizeFileName(s string) string {
	if s == "" {
		return "producto"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
