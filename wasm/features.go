package wasm

import "github.com/dpotapov/miniweb/engineconfig"

// FeatureSignExtension gates the i32.extend8_s/i32.extend16_s opcode
// family, which post-dates the core MVP instruction set.
const FeatureSignExtension = "wasm.sign_extension"

// Features toggles the optional instruction families the interpreter
// honors. A disabled family traps with UnhandledInstruction when
// execution reaches one of its opcodes.
type Features struct {
	SignExtension bool
}

// DefaultFeatures enables every optional instruction family.
func DefaultFeatures() Features {
	return Features{SignExtension: true}
}

// FeaturesFromConfig resolves the interpreter's feature gates from
// cfg, evaluated against env. A gate with no definition in cfg keeps
// its default.
func FeaturesFromConfig(cfg *engineconfig.Config, env map[string]any) (Features, error) {
	f := DefaultFeatures()
	if cfg.Defined(FeatureSignExtension) {
		on, err := cfg.EvalBool(FeatureSignExtension, env)
		if err != nil {
			return Features{}, err
		}
		f.SignExtension = on
	}
	return f, nil
}
