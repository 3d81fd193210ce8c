package modules

import "github.com/gin-gonic/gin"

// StaticModule serves a local directory outside the /api group.
type StaticModule struct {
	Engine *gin.Engine
	Prefix string
	Dir    string
}

func NewStaticModule(engine *gin.Engine, prefix, dir string) *StaticModule {
	return &StaticModule{Engine: engine, Prefix: prefix, Dir: dir}
}

func (m *StaticModule) Register(_ *gin.RouterGroup) {
	m.Engine.Static(m.Prefix, m.Dir)
}
