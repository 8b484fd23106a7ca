package model

// All 需要自动建表的模型
func All() []interface{} {
	return []interface{}{
		&User{},
		&Agency{},
		&Agent{}, &SocialMediaLinks{},
		&Project{}, &PriceRange{}, &AuthorizedAgent{}, &ProjectImage{},
	}
}
