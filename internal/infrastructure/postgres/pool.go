package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/aviso-pontos/pkg/config"
)

// NewPool abre el pool contra la base del programa de puntos (libro de movimientos y socios).
// Con DATABASE_URL se usa la URL tal cual, resolviendo el host a IPv4 cuando es posible.
// El reporte por lotes abre hasta poolSize conexiones en paralelo; MaxConns nunca baja de ese valor.
func NewPool(ctx context.Context, cfg config.DBConfig, poolSize int) (*pgxpool.Pool, error) {
	var dsn string
	if cfg.DatabaseURL != "" {
		dsn = databaseURLWithIPv4(cfg.DatabaseURL)
	} else {
		host := cfg.Host
		if ipv4, err := resolveIPv4(cfg.Host); err == nil {
			host = ipv4
		}
		dsnCfg := cfg
		dsnCfg.Host = host
		dsn = dsnCfg.DSN()
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse DSN: %w", err)
	}

	// Forzar IPv4 en el dial: los contenedores suelen no tener IPv6.
	poolConfig.ConnConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		var d net.Dialer
		if host, port, err := net.SplitHostPort(addr); err == nil {
			if ipv4, err := resolveIPv4(host); err == nil {
				return d.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
			}
		}
		return d.DialContext(ctx, network, addr)
	}

	poolConfig.MaxConns = 10
	if int32(poolSize) > poolConfig.MaxConns {
		poolConfig.MaxConns = int32(poolSize)
	}
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// valor y valor_resgatado son NUMERIC: se leen directo a decimal.Decimal.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping DB: %w", err)
	}
	return pool, nil
}

// resolveIPv4 devuelve la primera IPv4 del host; error si solo tiene IPv6.
func resolveIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("postgres: %s es IPv6", host)
	}
	ips, err := net.DefaultResolver.LookupIP(context.Background(), "ip4", host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("postgres: %s sin IPv4", host)
	}
	return ips[0].String(), nil
}

// databaseURLWithIPv4 reemplaza el host de la URL por su IPv4; ante cualquier error devuelve la URL original.
func databaseURLWithIPv4(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ipv4, err := resolveIPv4(u.Hostname())
	if err != nil {
		return databaseURL
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
