package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"locsync/core/luapatch"
	"locsync/core/table"
)

var (
	luaTable  string
	luaPrefix string
)

// luapatchCmd substitutes translated strings into a Lua string table.
var luapatchCmd = &cobra.Command{
	Use:   "luapatch",
	Short: "Insert translated strings into a Lua localisation table",
	Long: `Luapatch rewrites string assignments inside the named table of
the configured Lua file. The corpus key is derived as <prefix>_<luaKey>;
a translation is substituted only when it exists and differs from the
upstream originals, so untouched rows keep the upstream text.

Example:
  locsync luapatch --table REGIONS_NAMES_LOCALISATION --prefix factions_screen_name`,
	RunE: runLuapatch,
}

func init() {
	luapatchCmd.Flags().StringVar(&luaTable, "table", "", "Lua table name (required)")
	luapatchCmd.Flags().StringVar(&luaPrefix, "prefix", "", "Corpus key prefix")
	_ = luapatchCmd.MarkFlagRequired("table")
	RootCmd.AddCommand(luapatchCmd)
}

func runLuapatch(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}

	if cfg.Paths.LuaFile == "" {
		return fmt.Errorf("paths.lua_file is not set; configure PATHS_LUA_FILE in the project's .env")
	}

	translations, err := table.DirLookup(cfg.Paths.TranslationDB)
	if err != nil {
		return fmt.Errorf("translation corpus: %w", err)
	}
	upstream, err := table.DirLookup(cfg.Paths.UpstreamDB)
	if err != nil {
		return fmt.Errorf("reference corpus: %w", err)
	}
	upstreams := []map[string]string{upstream}
	if cfg.Paths.PatchDB != "" {
		if up2, err := table.DirLookup(cfg.Paths.PatchDB); err == nil {
			upstreams = append(upstreams, up2)
		}
	}

	updated, err := luapatch.PatchFile(cfg.Paths.LuaFile, luapatch.Options{
		TableName:    luaTable,
		Prefix:       luaPrefix,
		Translations: translations,
		Upstreams:    upstreams,
	})
	if err != nil {
		return err
	}

	name := filepath.Base(cfg.Paths.LuaFile)
	if updated == 0 {
		l.Info("no translated lines found for table", zap.String("file", name), zap.String("table", luaTable))
		return nil
	}
	l.Info("lua table patched", zap.String("file", name), zap.String("table", luaTable), zap.Int("replaced", updated))
	return nil
}
