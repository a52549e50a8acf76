// Package config manages configuration parsing and validation for regnorm.
//
//	            +-------------+
//	            |   Config    |
//	            | (Settings)  |
//	            +------+------+
//	                   |
//	   +-----------+---+-------+-----------+
//	   |           |           |           |
//	+--+---+   +---+--+   +----+-+   +-----++
//	| YAML |   | HCL  |   | JSON |   | TOML |
//	+------+   +------+   +------+   +------+
//
// 🎯 Purpose:
//   - Loads run settings (search folder, file pattern, logs directory,
//     error policy, workers, backup, dry run)
//   - Picks a parser by file extension through a small registry
//   - Rejects unknown fields in every format
//   - Applies defaults and validates values
//
// 🔍 Example:
//
//	cfg, err := config.Load(ctx, ".regnorm.yaml")
//	if err != nil {
//		return err
//	}
//	fmt.Println(cfg) // /srv/phones/**/*-user.cfg (write, on_error=skip, workers=1)
package config
