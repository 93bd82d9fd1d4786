package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/MrEthical07/goCred/jwt"
	"github.com/MrEthical07/goCred/validate"
)

func secretFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "secret",
		Aliases:  []string{"s"},
		Usage:    "32-character hexadecimal sign secret",
		EnvVars:  []string{"GOCRED_SIGN_SECRET"},
		Required: true,
	}
}

// SignCommand signs a token from --claim pairs.
func SignCommand() *cli.Command {
	return &cli.Command{
		Name:  "sign",
		Usage: "Sign a token",
		Flags: []cli.Flag{
			secretFlag(),
			&cli.StringSliceFlag{
				Name:    "claim",
				Aliases: []string{"C"},
				Usage:   "claim as key=value; JSON values (numbers, booleans, objects) are decoded",
			},
			&cli.StringFlag{
				Name:  "subject",
				Usage: "sub claim",
			},
			&cli.DurationFlag{
				Name:  "expires-in",
				Usage: "token lifetime (default from config)",
			},
			&cli.StringFlag{
				Name:  "alg",
				Usage: "HS256, HS384 or HS512 (default from config)",
			},
			&cli.BoolFlag{
				Name:  "device-id",
				Usage: "add a random deviceId claim",
			},
		},
		Action: func(c *cli.Context) error {
			tk, err := toolkit(c)
			if err != nil {
				return err
			}
			payload, err := parseClaims(c.StringSlice("claim"))
			if err != nil {
				return err
			}
			if c.Bool("device-id") {
				payload[validate.DeviceIDClaim] = uuid.NewString()
			}

			opts := tk.SignOptions()
			if c.IsSet("expires-in") {
				opts.ExpiresIn = c.Duration("expires-in")
			}
			if c.IsSet("alg") {
				alg, err := jwt.ParseAlgorithm(c.String("alg"))
				if err != nil {
					return err
				}
				opts.Algorithm = alg
			}
			opts.Subject = c.String("subject")

			token, err := tk.SignToken(payload, c.String("secret"), opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, token)
			return err
		},
	}
}

// VerifyCommand verifies a token and prints its claims.
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Verify a token and print its claims",
		ArgsUsage: "<token>",
		Flags: []cli.Flag{
			secretFlag(),
			&cli.StringSliceFlag{
				Name:  "alg",
				Usage: "accepted algorithm, repeatable (default from config)",
			},
			&cli.BoolFlag{
				Name:  "require-device",
				Usage: "require a canonical UUID deviceId claim",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "<token>"); err != nil {
				return err
			}
			tk, err := toolkit(c)
			if err != nil {
				return err
			}
			token := c.Args().First()

			if c.Bool("require-device") {
				res, err := tk.Authenticate(c.Context, token, c.String("secret"))
				if err != nil {
					return err
				}
				return writeJSON(c.App.Writer, res.Claims)
			}

			opts := tk.VerifyOptions()
			if algs := c.StringSlice("alg"); len(algs) > 0 {
				opts.Algorithms = opts.Algorithms[:0]
				for _, s := range algs {
					alg, err := jwt.ParseAlgorithm(s)
					if err != nil {
						return err
					}
					opts.Algorithms = append(opts.Algorithms, alg)
				}
			}
			claims, err := tk.VerifyToken(token, c.String("secret"), opts)
			if err != nil {
				return err
			}
			return writeJSON(c.App.Writer, claims)
		},
	}
}

// DecodeCommand decodes a token without verifying it.
func DecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode a token without verifying the signature",
		ArgsUsage: "<token>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "complete",
				Usage: "include the header and signature",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "<token>"); err != nil {
				return err
			}
			tk, err := toolkit(c)
			if err != nil {
				return err
			}
			d, err := tk.DecodeToken(c.Args().First(), c.Bool("complete"))
			if err != nil {
				return err
			}
			if !c.Bool("complete") {
				return writeJSON(c.App.Writer, d.Claims)
			}
			return writeJSON(c.App.Writer, map[string]any{
				"header":    d.Header,
				"payload":   d.Claims,
				"signature": d.Signature,
			})
		},
	}
}

func parseClaims(pairs []string) (map[string]any, error) {
	payload := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, raw, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("claim %q: want key=value", p)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		payload[key] = v
	}
	return payload, nil
}
