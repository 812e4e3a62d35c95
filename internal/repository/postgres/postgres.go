package postgres

import (
	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/repository"
)

type postgresRepository struct {
	db          *gorm.DB
	tenantRepo  repository.TenantRepository
	jobExecRepo repository.JobExecutionRepository
	schemaExec  repository.SchemaExecutor
}

func NewPostgresRepository(db *gorm.DB) (repository.PostgresRepository, error) {
	executor, err := NewSchemaExecutor(db)
	if err != nil {
		return nil, err
	}

	return &postgresRepository{
		db:          db,
		tenantRepo:  NewTenantRepository(db),
		jobExecRepo: NewJobExecutionRepository(db),
		schemaExec:  executor,
	}, nil
}

func (r *postgresRepository) Tenant() repository.TenantRepository {
	return r.tenantRepo
}

func (r *postgresRepository) JobExecution() repository.JobExecutionRepository {
	return r.jobExecRepo
}

func (r *postgresRepository) Schemas() repository.SchemaExecutor {
	return r.schemaExec
}
