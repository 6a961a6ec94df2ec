package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
)

// SeedUseCase 空目录启动时写入示例数据
// 示例物品带固定ID和日期,直接写仓储,不经过ApplyMovement(历史流水不能再改一次数量)
type SeedUseCase struct {
	items  item.Repository
	ledger ledger.Repository
	tx     item.TxManager
	loc    *time.Location
	log    *slog.Logger
}

// NewSeedUseCase 创建示例数据用例
func NewSeedUseCase(items item.Repository, ledgerRepo ledger.Repository, tx item.TxManager, loc *time.Location, log *slog.Logger) *SeedUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	return &SeedUseCase{items: items, ledger: ledgerRepo, tx: tx, loc: loc, log: log}
}

// Execute 目录为空时写入示例物品和流水,返回是否写入
func (uc *SeedUseCase) Execute(ctx context.Context) (bool, error) {
	seeded := false
	err := uc.tx.Transaction(ctx, func(ctx context.Context) error {
		existing, err := uc.items.List(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		for _, it := range seedItems(uc.loc) {
			if _, err := uc.items.Upsert(ctx, it); err != nil {
				return err
			}
		}
		for _, t := range seedTransactions(uc.loc) {
			if err := uc.ledger.Append(ctx, t); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		uc.log.InfoContext(ctx, "sample inventory seeded")
	}
	return seeded, nil
}

func seedItems(loc *time.Location) []*item.Item {
	day := func(s string) time.Time {
		t, _ := time.ParseInLocation(item.DateLayout, s, loc)
		return t
	}
	return []*item.Item{
		{
			ID:          1,
			Name:        "Semences de blé",
			Category:    "Semences",
			Quantity:    500,
			Unit:        "kg",
			MinQuantity: 100,
			Price:       1250,
			Location:    "Hangar principal",
			Supplier:    "Agro-Semences SARL",
			SKU:         "SEM-BLE-001",
			ExpiryDate:  "2024-12-31",
			Notes:       "Semences certifiées pour la saison 2024",
			LastUpdated: day("2024-01-15"),
		},
		{
			ID:          2,
			Name:        "Engrais NPK 15-15-15",
			Category:    "Engrais",
			Quantity:    800,
			Unit:        "kg",
			MinQuantity: 200,
			Price:       650,
			Location:    "Hangar principal",
			Supplier:    "Fertil-Agri",
			SKU:         "ENG-NPK-001",
			ExpiryDate:  "2025-06-30",
			Notes:       "Engrais complet pour céréales",
			LastUpdated: day("2024-01-10"),
		},
		{
			ID:          3,
			Name:        "Herbicide glyphosate",
			Category:    "Produits phytosanitaires",
			Quantity:    45,
			Unit:        "L",
			MinQuantity: 20,
			Price:       8500,
			Location:    "Local sécurisé",
			Supplier:    "Phyto-Protection",
			SKU:         "HER-GLY-001",
			ExpiryDate:  "2025-03-15",
			Notes:       "Stockage en local ventilé obligatoire",
			LastUpdated: day("2024-01-12"),
		},
		{
			ID:          4,
			Name:        "Gasoil agricole",
			Category:    "Carburants",
			Quantity:    1200,
			Unit:        "L",
			MinQuantity: 300,
			Price:       850,
			Location:    "Cuve extérieure",
			Supplier:    "Fuel-Agri",
			SKU:         "GAZ-AGR-001",
			Notes:       "Carburant détaxé pour usage agricole",
			LastUpdated: day("2024-01-08"),
		},
		{
			ID:          5,
			Name:        "Semences de maïs hybride",
			Category:    "Semences",
			Quantity:    75,
			Unit:        "kg",
			MinQuantity: 100,
			Price:       3200,
			Location:    "Hangar principal",
			Supplier:    "Agro-Semences SARL",
			SKU:         "SEM-MAI-001",
			ExpiryDate:  "2024-08-31",
			Notes:       "Variété précoce, rendement élevé",
			LastUpdated: day("2024-01-05"),
		},
	}
}

// seedTransactions 按日期从旧到新追加,流水ID随之递增
func seedTransactions(loc *time.Location) []*ledger.Transaction {
	day := func(s string) time.Time {
		t, _ := time.ParseInLocation(item.DateLayout, s, loc)
		return t
	}
	return []*ledger.Transaction{
		{ItemID: 1, Type: ledger.MovementIn, Quantity: 200, Date: day("2024-01-10"), User: "Marie Martin", Notes: "Complément stock"},
		{ItemID: 3, Type: ledger.MovementOut, Quantity: 5, Date: day("2024-01-14"), User: "Jean Dupont", Notes: "Traitement parcelle sud"},
		{ItemID: 4, Type: ledger.MovementIn, Quantity: 500, Date: day("2024-01-15"), User: "Marie Martin", Notes: "Livraison mensuelle"},
		{ItemID: 2, Type: ledger.MovementOut, Quantity: 200, Date: day("2024-01-18"), User: "Jean Dupont", Notes: "Épandage parcelle est"},
		{ItemID: 1, Type: ledger.MovementOut, Quantity: 50, Date: day("2024-01-20"), User: "Jean Dupont", Notes: "Semis parcelle nord"},
	}
}
