package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/Lootkeeper_Go/configs"
	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
	"github.com/osse101/Lootkeeper_Go/internal/loot"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
	"github.com/osse101/Lootkeeper_Go/internal/validation"
)

// Sentinel errors for catalog loader
var (
	ErrInvalidConfig = errors.New("invalid catalog configuration")

	ErrDuplicateCode = errors.New("duplicate code")
)

// Loader handles loading, validating and syncing the catalog configuration
type Loader interface {
	Load(ctx context.Context, path string) (*Config, error)
	Parse(data []byte, source string) (*Config, error)
	Validate(config *Config) error
	SyncToStore(ctx context.Context, config *Config, repo repository.Catalog) (*SyncResult, error)
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
	validate        *validator.Validate
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	v := validator.New()

	// Register custom validation for item types
	_ = v.RegisterValidation("itemtype", func(fl validator.FieldLevel) bool {
		return domain.ItemType(fl.Field().String()).Valid()
	})

	return &catalogLoader{
		schemaValidator: validation.NewSchemaValidator(),
		validate:        v,
	}
}

// Load reads and parses a catalog JSON file. An empty path loads the
// catalog embedded in the binary.
func (l *catalogLoader) Load(ctx context.Context, path string) (*Config, error) {
	log := logger.FromContext(ctx)

	data := configs.Catalog
	source := "embedded"
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
		}
		source = path
	} else {
		log.Info(LogMsgUsingEmbedded)
	}

	config, err := l.Parse(data, source)
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgCatalogLoaded, "source", source, "version", config.Version,
		"currencies", len(config.Currencies), "items", len(config.Items), "monsters", len(config.Monsters))
	return config, nil
}

// Parse validates data against the catalog schema and decodes it
func (l *catalogLoader) Parse(data []byte, source string) (*Config, error) {
	if err := l.schemaValidator.RegisterSchema(CatalogSchemaName, configs.CatalogSchema); err != nil {
		return nil, fmt.Errorf(ErrMsgRegisterSchemaFailed, err)
	}

	// Validate against schema first
	if err := l.schemaValidator.Validate(data, CatalogSchemaName); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaValidation, source, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks the catalog for errors the schema cannot express:
// duplicate codes, dangling references and drop table invariants.
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(config.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	currencyIDs := make(map[string]int, len(config.Currencies))
	for i, def := range config.Currencies {
		if err := l.validateDef(DefCurrency, def.Code, def); err != nil {
			return err
		}
		if _, dup := currencyIDs[def.Code]; dup {
			return fmt.Errorf(ErrFmtDuplicateCode, ErrDuplicateCode, DefCurrency, def.Code)
		}
		currencyIDs[def.Code] = i + 1
	}

	itemIDs := make(map[string]int, len(config.Items))
	for i, def := range config.Items {
		if err := l.validateDef(DefItem, def.Code, def); err != nil {
			return err
		}
		if _, dup := itemIDs[def.Code]; dup {
			return fmt.Errorf(ErrFmtDuplicateCode, ErrDuplicateCode, DefItem, def.Code)
		}
		itemIDs[def.Code] = i + 1
	}

	monsterCodes := make(map[string]bool, len(config.Monsters))
	for _, def := range config.Monsters {
		if err := l.validateDef(DefMonster, def.Code, def); err != nil {
			return err
		}
		if monsterCodes[def.Code] {
			return fmt.Errorf(ErrFmtDuplicateCode, ErrDuplicateCode, DefMonster, def.Code)
		}
		monsterCodes[def.Code] = true

		// Placeholder ids stand in for storage ids, which do not exist yet
		if _, err := dropEntries(def, itemIDs, currencyIDs); err != nil {
			return err
		}
	}

	return nil
}

func (l *catalogLoader) validateDef(kind, code string, def interface{}) error {
	if err := l.validate.Struct(def); err != nil {
		return fmt.Errorf(ErrFmtInvalidDef, ErrInvalidConfig, kind, code, err.Error())
	}
	return nil
}

// dropEntries resolves a monster's drops into drop table entries and checks
// the drop table invariants
func dropEntries(def MonsterDef, itemIDs, currencyIDs map[string]int) ([]domain.DropTableEntry, error) {
	entries := make([]domain.DropTableEntry, 0, len(def.Drops))
	for i, drop := range def.Drops {
		entry, missing, ok := drop.toEntry(itemIDs, currencyIDs)
		if !ok {
			ref := drop.Item
			if missing == DefCurrency {
				ref = drop.Currency
			}
			return nil, fmt.Errorf(ErrFmtUnknownReference, ErrInvalidConfig, def.Code, i, missing, ref)
		}
		entries = append(entries, entry)
	}
	if err := loot.ValidateDropTable(entries); err != nil {
		return nil, fmt.Errorf(ErrFmtInvalidDropTable, def.Code, err)
	}
	return entries, nil
}

// SyncToStore upserts currencies, items and monsters keyed by code and
// replaces every monster's drop table. Running it twice is a no-op.
func (l *catalogLoader) SyncToStore(ctx context.Context, config *Config, repo repository.Catalog) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	if err := l.Validate(config); err != nil {
		return nil, err
	}

	result := &SyncResult{}

	currencyIDs := make(map[string]int, len(config.Currencies))
	for _, def := range config.Currencies {
		id, err := repo.UpsertCurrency(ctx, def.ToDomain())
		if err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertCurrencyFailed, def.Code, err)
		}
		currencyIDs[def.Code] = id
		result.CurrenciesSynced++
	}

	itemIDs := make(map[string]int, len(config.Items))
	for _, def := range config.Items {
		id, err := repo.UpsertItem(ctx, def.ToDomain())
		if err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertItemFailed, def.Code, err)
		}
		itemIDs[def.Code] = id
		result.ItemsSynced++
	}

	for _, def := range config.Monsters {
		id, err := repo.UpsertMonster(ctx, def.ToDomain())
		if err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertMonsterFailed, def.Code, err)
		}
		entries, err := dropEntries(def, itemIDs, currencyIDs)
		if err != nil {
			return nil, err
		}
		if err := repo.ReplaceDropTable(ctx, id, entries); err != nil {
			return nil, fmt.Errorf(ErrMsgReplaceDropsFailed, def.Code, err)
		}
		result.MonstersSynced++
		result.DropsSynced += len(entries)
		log.Debug(LogMsgSyncedMonster, "code", def.Code, "monster_id", id, "drops", len(entries))
	}

	log.Info(LogMsgSyncCompleted,
		"currencies", result.CurrenciesSynced,
		"items", result.ItemsSynced,
		"monsters", result.MonstersSynced,
		"drops", result.DropsSynced)

	return result, nil
}
