package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bridgefall/server/internal/grid"
)

func zapPoint(p grid.Point) zap.Field {
	return zap.String("at", fmt.Sprintf("(%d,%d)", p.X, p.Y))
}

func zapKind(k StructureKind) zap.Field {
	return zap.String("kind", k.String())
}

func zapNoise(l NoiseLevel) zap.Field {
	return zap.String("level", l.String())
}
